package generator

import (
	"context"
	"errors"

	"quickcicd/internal/prompt"
	"quickcicd/pkg/manifest"
)

var (
	// ErrPreconditionConflict means generated files already exist.
	ErrPreconditionConflict = errors.New("files already exist")
	// ErrMissingManifest means the project descriptor the type needs is absent.
	ErrMissingManifest = manifest.ErrMissingManifest
	// ErrUnsupportedProjectType means a placeholder type was selected.
	ErrUnsupportedProjectType = errors.New("project type is not supported yet")
	// ErrWriteFailure wraps the file system error of a failed artifact write.
	ErrWriteFailure = errors.New("failed to write generated file")
	// ErrInvalidProfile means the answers did not form a usable profile.
	ErrInvalidProfile = errors.New("invalid project profile")
)

// Kind classifies err for reporting. Unknown errors map to "unknown".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPreconditionConflict):
		return "precondition_conflict"
	case errors.Is(err, ErrMissingManifest):
		return "missing_manifest"
	case errors.Is(err, ErrUnsupportedProjectType):
		return "unsupported_project_type"
	case errors.Is(err, ErrWriteFailure):
		return "write_failure"
	case errors.Is(err, ErrInvalidProfile):
		return "invalid_profile"
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		return "aborted"
	default:
		return "unknown"
	}
}
