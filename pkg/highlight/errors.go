package highlight

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage is returned by a Tokenizer that cannot classify the
// requested language. The highlighter leaves such subtrees untouched.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// RangeError reports desynchronized offset tracking between the document and
// annotation trees. It is an internal or contract error, never a data error.
type RangeError struct {
	// Op is the operation that detected the violation.
	Op string

	// Offset and End delimit the offending range.
	Offset int
	End    int

	// Reason describes the violated invariant.
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: range [%d,%d): %s", e.Op, e.Offset, e.End, e.Reason)
}
