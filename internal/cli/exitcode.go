package cli

import (
	"errors"

	"github.com/danieljhkim/pdfsplit/internal/config"
	"github.com/danieljhkim/pdfsplit/internal/engine"
)

// Process exit codes.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidArgument = 2
	ExitIO              = 3
	ExitDocument        = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, engine.ErrInvalidArgument), errors.Is(err, config.ErrInvalidConfig):
		return ExitInvalidArgument
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, engine.ErrIO):
		return ExitIO
	case errors.Is(err, engine.ErrDocument), errors.Is(err, engine.ErrVerification):
		return ExitDocument
	default:
		return ExitFailure
	}
}
