package favorites

import "fmt"

// PathError reports a path that cannot be used: it cannot be normalized, or
// adding it would duplicate an existing favorite.
type PathError struct {
	Path string
	Msg  string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s: %s", e.Path, e.Msg)
}

func (e *PathError) Unwrap() error { return e.Err }
