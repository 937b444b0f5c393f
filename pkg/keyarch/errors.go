package keyarch

import "fmt"

// StructureError reports a malformed or unsupported archive: a bad envelope,
// an unknown class tag, an out-of-range reference, or a cyclic object graph.
type StructureError struct {
	Msg string
}

func (e *StructureError) Error() string {
	return e.Msg
}

func structuref(format string, args ...any) *StructureError {
	return &StructureError{Msg: fmt.Sprintf(format, args...)}
}
