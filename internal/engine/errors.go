package engine

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/pdfsplit/internal/planner"
)

var (
	// ErrInvalidArgument indicates a request that can never succeed. It is
	// always reported before any output is written.
	ErrInvalidArgument = planner.ErrInvalidArgument

	// ErrNotFound indicates the source document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDocument indicates the document engine failed to open, read or copy a page.
	ErrDocument = errors.New("document error")

	// ErrVerification indicates a post-copy or post-persist check failed.
	ErrVerification = errors.New("verification failed")

	// ErrIO indicates a filesystem or output stream failure.
	ErrIO = errors.New("i/o error")
)

var kinds = []error{ErrInvalidArgument, ErrNotFound, ErrDocument, ErrVerification, ErrIO}

// Kind returns the taxonomy sentinel carried by err, or nil.
func Kind(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// classify returns err unchanged when it already carries a kind, otherwise
// wraps it in fallback.
func classify(err error, fallback error) error {
	if err == nil || Kind(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
