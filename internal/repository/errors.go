package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotLoaded is returned by Replace before Load has succeeded.
var ErrNotLoaded = errors.New("repository not loaded")

// PartialWriteError reports a commit that failed after some collections
// were written and could not all be restored. Keys lists the collections
// whose stored value no longer matches the in-memory view.
type PartialWriteError struct {
	Keys []string
	Err  error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write, inconsistent collections [%s]: %v", strings.Join(e.Keys, ", "), e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
