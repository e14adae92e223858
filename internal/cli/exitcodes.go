package cli

import (
	"errors"

	"github.com/yaklabco/mdhighlight/internal/configloader"
	"github.com/yaklabco/mdhighlight/pkg/annotation"
	"github.com/yaklabco/mdhighlight/pkg/fsutil"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
)

// Exit codes for mdhighlight.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a failure not covered by a more specific code.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates malformed input or tokenizer output.
	ExitDataError = 65

	// ExitInternalError indicates a broken highlighting invariant.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration errors.
	ExitConfigError = 78
)

// ErrInteractiveInput is returned when input would be read from a terminal.
var ErrInteractiveInput = errors.New("refusing to read input from a terminal; pass a file or pipe input")

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		validationErr *configloader.ValidationError
		malformedErr  *annotation.MalformedError
		rangeErr      *highlight.RangeError
	)

	switch {
	case errors.Is(err, ErrInteractiveInput):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.As(err, &malformedErr):
		return ExitDataError
	case errors.As(err, &rangeErr):
		return ExitInternalError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitFailure
	}
}
