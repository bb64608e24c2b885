// Package runtime provides the execution context for nextver commands.
//
// It encapsulates shared dependencies needed by actions: the loaded release
// configuration, the repository gateway, the pull request client, a file
// system rooted at the repository and the logger.
package runtime
