// Package config builds the release configuration nextver runs against.
//
// It handles:
//   - The JSON settings file describing one or more projects
//   - Manual configuration assembled from command line flags
//   - Repository path resolution (home expansion, relative path rejection)
//   - Release branch templates
package config
