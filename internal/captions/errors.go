package captions

import "fmt"

// ExtractionError reports a document record missing a field the validated
// model requires. Extraction is all-or-nothing: one invalid record fails the
// whole operation.
type ExtractionError struct {
	Entity string
	Index  int
	Field  string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s %d: missing %s", e.Entity, e.Index, e.Field)
}
