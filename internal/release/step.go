package release

// Step identifies one state of a release or promotion run
type Step int

const (
	StepNone Step = iota
	StepVerifyClean
	StepSnapshotPriorBranch
	StepSyncBranches
	StepComputeNextVersion
	StepSelectTargetBranch
	StepBumpVersionFiles
	StepStageCommitTagPush
	StepOpenPullRequest
	StepMergeBranches
	StepPushProduction
	StepRestoreActiveBranch
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "None"
	case StepVerifyClean:
		return "VerifyClean"
	case StepSnapshotPriorBranch:
		return "SnapshotPriorBranch"
	case StepSyncBranches:
		return "SyncBranches"
	case StepComputeNextVersion:
		return "ComputeNextVersion"
	case StepSelectTargetBranch:
		return "SelectTargetBranch"
	case StepBumpVersionFiles:
		return "BumpVersionFiles"
	case StepStageCommitTagPush:
		return "StageCommitTagPush"
	case StepOpenPullRequest:
		return "OpenPullRequest"
	case StepMergeBranches:
		return "MergeBranches"
	case StepPushProduction:
		return "PushProduction"
	case StepRestoreActiveBranch:
		return "RestoreActiveBranch"
	default:
		return "Unknown"
	}
}

// Description is the human readable label used in progress output
func (s Step) Description() string {
	switch s {
	case StepVerifyClean:
		return "Verify clean working tree"
	case StepSnapshotPriorBranch:
		return "Remember active branch"
	case StepSyncBranches:
		return "Sync staging and production"
	case StepComputeNextVersion:
		return "Compute next version"
	case StepSelectTargetBranch:
		return "Select target branch"
	case StepBumpVersionFiles:
		return "Bump version files"
	case StepStageCommitTagPush:
		return "Commit, tag and push"
	case StepOpenPullRequest:
		return "Open pull request"
	case StepMergeBranches:
		return "Merge staging and production"
	case StepPushProduction:
		return "Push production"
	case StepRestoreActiveBranch:
		return "Restore active branch"
	default:
		return s.String()
	}
}

// ReleaseSteps lists the steps of a release run in execution order
func ReleaseSteps() []Step {
	return []Step{
		StepVerifyClean,
		StepSnapshotPriorBranch,
		StepSyncBranches,
		StepComputeNextVersion,
		StepSelectTargetBranch,
		StepBumpVersionFiles,
		StepStageCommitTagPush,
		StepOpenPullRequest,
		StepRestoreActiveBranch,
	}
}

// PromoteSteps lists the steps of a promotion run in execution order
func PromoteSteps() []Step {
	return []Step{
		StepVerifyClean,
		StepSnapshotPriorBranch,
		StepSyncBranches,
		StepMergeBranches,
		StepPushProduction,
		StepRestoreActiveBranch,
	}
}

// StepStatus is the outcome reported for a step
type StepStatus int

const (
	StepStarted StepStatus = iota
	StepDone
	StepSkipped
	StepFailed
)

func (s StepStatus) String() string {
	switch s {
	case StepStarted:
		return "started"
	case StepDone:
		return "done"
	case StepSkipped:
		return "skipped"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is sent to the Observer on every step transition
type Event struct {
	Step   Step
	Status StepStatus
	Detail string
	Err    error
}

// Observer receives step events. It is called synchronously from the run.
type Observer func(Event)
