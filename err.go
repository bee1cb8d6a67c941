package srihtml

import (
	"errors"
	"fmt"
)

// Fatal structural errors. Feed returns them wrapped in a *ParseError;
// discriminate with errors.Is. After a fatal error the tree state is
// undefined and the parser must be Reset (or discarded) before reuse.
var (
	// ErrQuirksMode rejects any document whose DOCTYPE would switch a
	// browser into quirks mode. Non-standards-mode documents are out of
	// scope and are never parsed in a degraded mode.
	ErrQuirksMode = errors.New("srihtml: document is not spec conformant and would trigger quirks mode, which is not supported")

	// ErrForeignEndTagMismatch signals an end tag inside SVG/MathML content
	// that does not match the open element.
	ErrForeignEndTagMismatch = errors.New("srihtml: end tag does not match start tag inside foreign (XML) content")

	// ErrContentBeforeDoctype signals a DOCTYPE that appears after content
	// other than whitespace or comments.
	ErrContentBeforeDoctype = errors.New("srihtml: only whitespace and HTML comments are allowed before the DOCTYPE")

	// ErrUnbalancedEndTag is returned by Stringify when an end tag does not
	// pair with any element on the verification stack.
	ErrUnbalancedEndTag = errors.New("srihtml: end tag does not pair with its open element")
)

// A ParseError wraps a fatal error with the byte offset into the pending
// input buffer at which it was detected.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A WarningCode identifies one of the non-fatal advisory conditions.
type WarningCode int

const (
	// WarnSurrogateInInput reports a surrogate code point in the input
	// stream (the spec's surrogate-in-input-stream parse error).
	WarnSurrogateInInput WarningCode = iota + 1

	// WarnCharRefOutOfRange reports a numeric character reference beyond
	// U+10FFFF, substituted with U+FFFD.
	WarnCharRefOutOfRange

	// WarnCharRefSurrogate reports a numeric character reference in the
	// UTF-16 surrogate ranges, substituted with U+FFFD.
	WarnCharRefSurrogate

	// WarnCharRefNull reports a numeric character reference to U+0000,
	// substituted with U+FFFD.
	WarnCharRefNull
)

// A Warning is a non-fatal diagnostic. Warnings never interrupt parsing;
// callers may read them from Parser.Warnings or observe them on the
// parser's Logger.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return w.Message
}

const (
	msgSurrogateInInput  = "surrogate character in input stream; this should not happen in normal usage"
	msgCharRefOutOfRange = "character reference outside valid Unicode range, replaced with &#xFFFD; in the output"
	msgCharRefSurrogate  = "character reference is a surrogate, replaced with &#xFFFD; in the output"
	msgCharRefNull       = "character reference is null (U+0000), replaced with &#xFFFD; in the output"
)
