package domain

import "errors"

// Failure kinds for the release workflow. Every run ends in success,
// cancellation, or exactly one of these; callers match with errors.Is.
var (
	ErrNotARepository     = errors.New("not a git repository")
	ErrUserCancelled      = errors.New("cancelled by user")
	ErrEmptyCommitMessage = errors.New("commit message cannot be empty")
	ErrVersionNotFound    = errors.New("no version found in manifest")
	ErrDuplicateVersion   = errors.New("version already released")
	ErrVersionRegression  = errors.New("version is lower than the latest release")
	ErrTagCollision       = errors.New("tag already exists")
	ErrTagCreationFailed  = errors.New("tag creation failed")
	ErrPushFailed         = errors.New("branch push failed")
	ErrTagPushFailed      = errors.New("tag push failed")
)

// failureKinds maps sentinel errors to the journal's failure labels.
var failureKinds = map[error]string{
	ErrNotARepository:     "NotARepository",
	ErrUserCancelled:      "UserCancelled",
	ErrEmptyCommitMessage: "EmptyCommitMessage",
	ErrVersionNotFound:    "VersionNotFound",
	ErrDuplicateVersion:   "DuplicateVersion",
	ErrVersionRegression:  "VersionRegression",
	ErrTagCollision:       "TagCollision",
	ErrTagCreationFailed:  "TagCreationFailed",
	ErrPushFailed:         "PushFailed",
	ErrTagPushFailed:      "TagPushFailed",
}

// FailureKind returns the label for a workflow error, or "Unknown" when the
// error does not wrap one of the sentinel kinds.
func FailureKind(err error) string {
	for sentinel, kind := range failureKinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return "Unknown"
}

// IsCancellation reports whether an error represents a user decline rather
// than a hard failure.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrUserCancelled)
}
