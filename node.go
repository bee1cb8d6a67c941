package srihtml

import "strings"

// A NodeType is the type of a Node in the flat document sequence.
type NodeType uint32

const (
	// TextNode is literal character data, emitted verbatim.
	TextNode NodeType = iota

	// CommentNode renders as <!--data-->.
	CommentNode

	// DeclarationNode renders as <!data> and holds an accepted DOCTYPE.
	DeclarationNode

	// ProcessingInstructionNode renders as <?data>. The tokenizer demotes
	// processing instructions found in HTML to comments, but the kind is
	// part of the node model for callers that build sequences by hand.
	ProcessingInstructionNode

	// UnknownDeclNode renders as <![data]> and holds a CDATA section kept
	// verbatim inside foreign content.
	UnknownDeclNode

	// StartTagNode marks the opening of an Element. Elem is the element.
	StartTagNode

	// EndTagNode closes an Element. Elem is a back-reference to the opener;
	// it is never used to mutate the element, only to validate nesting
	// during serialization.
	EndTagNode
)

// A Node is one entry in the flat, document-ordered node sequence. The flat
// sequence is the canonical representation of a parsed document; element
// child lists are a derived convenience view.
type Node struct {
	Type NodeType

	// Data holds the text for TextNode and the content between the fixed
	// prefix/suffix for the comment-like kinds.
	Data string

	// Elem is set for StartTagNode and EndTagNode.
	Elem *Element
}

// render appends the textual form of the node to b.
func (n *Node) render(b *strings.Builder) {
	switch n.Type {
	case TextNode:
		b.WriteString(n.Data)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case DeclarationNode:
		b.WriteString("<!")
		b.WriteString(n.Data)
		b.WriteString(">")
	case ProcessingInstructionNode:
		b.WriteString("<?")
		b.WriteString(n.Data)
		b.WriteString(">")
	case UnknownDeclNode:
		b.WriteString("<![")
		b.WriteString(n.Data)
		b.WriteString("]>")
	case StartTagNode:
		n.Elem.render(b)
	case EndTagNode:
		b.WriteString("</")
		b.WriteString(n.Elem.Name)
		b.WriteString(">")
	}
}

// An Attribute is a single name/value pair on an Element. Attributes keep
// their document order; a duplicate name later in the same tag is dropped
// (first occurrence wins).
type Attribute struct {
	Key string
	Val string

	// HasValue distinguishes a boolean attribute written without any value
	// (<input disabled>) from one with an explicit empty value
	// (disabled=""). Boolean attributes render name-only.
	HasValue bool

	// quote is the quote character the attribute value carried in the
	// source, or 0 for unquoted/absent values and caller-set attributes.
	quote byte

	// changed marks attributes written through SetAttr, which re-render
	// with the element's active quote instead of their original one.
	changed bool
}

// An Element is an HTML start tag: name, ordered attributes, voidness and
// the quote style used when re-serializing attribute values. Elements are
// shared by identity between the flat node sequence and the SRI-tag index,
// so attribute mutations are visible to the serializer.
type Element struct {
	// Name is case-normalized to lower case except inside foreign (SVG or
	// MathML) content, where the original case is preserved.
	Name string

	// Void reports that the element cannot have children or an end tag.
	Void bool

	// Children holds the non-tag content (text, comments, declarations)
	// that appeared directly inside the element. The flat node sequence
	// remains the canonical form for serialization.
	Children []*Node

	attrs       []Attribute
	quote       byte
	selfClosing bool
}

// voidElements are the HTML5 void elements plus the legacy names that
// historically took no end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"menuitem": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
	"basefont": true, "bgsound": true, "command": true, "frame": true,
	"image": true, "isindex": true, "nextid": true, "spacer": true,
}

func isVoid(name string) bool {
	return voidElements[strings.ToLower(name)]
}

// NewElement builds an Element with the given attributes, dropping
// duplicate attribute names (first wins). The quote style defaults to a
// double quote.
func NewElement(name string, attrs ...Attribute) *Element {
	e := &Element{
		Name:  name,
		Void:  isVoid(name),
		quote: '"',
	}
	for _, a := range attrs {
		e.appendAttr(a)
	}
	return e
}

// appendAttr adds a unless an attribute with the same key already exists.
func (e *Element) appendAttr(a Attribute) {
	for i := range e.attrs {
		if e.attrs[i].Key == a.Key {
			return
		}
	}
	e.attrs = append(e.attrs, a)
}

// Attr returns the value of the named attribute. The second return value
// reports whether the attribute is present; a boolean attribute yields "".
func (e *Element) Attr(key string) (string, bool) {
	for i := range e.attrs {
		if e.attrs[i].Key == key {
			return e.attrs[i].Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(key string) bool {
	_, ok := e.Attr(key)
	return ok
}

// SetAttr creates or overwrites the named attribute and marks it changed,
// so it re-renders with the element's active quote style. Attributes the
// caller never touches keep their original text.
func (e *Element) SetAttr(key, val string) {
	for i := range e.attrs {
		if e.attrs[i].Key == key {
			e.attrs[i].Val = val
			e.attrs[i].HasValue = true
			e.attrs[i].changed = true
			return
		}
	}
	e.attrs = append(e.attrs, Attribute{Key: key, Val: val, HasValue: true, changed: true})
}

// DeleteAttr removes the named attribute. Deleting an absent attribute is
// a no-op.
func (e *Element) DeleteAttr(key string) {
	for i := range e.attrs {
		if e.attrs[i].Key == key {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the attribute list in document order.
func (e *Element) Attrs() []Attribute {
	out := make([]Attribute, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Quote returns the quote character used for re-serialized attribute
// values on this element.
func (e *Element) Quote() byte {
	return e.quote
}

// XMLSelfClosing reports whether the element re-serializes with a trailing
// solidus, as self-closing tags inside foreign content do.
func (e *Element) XMLSelfClosing() bool {
	return e.selfClosing
}

// MarkXMLSelfClosing latches the self-closing flag. The latch is one-way:
// once set it cannot be cleared.
func (e *Element) MarkXMLSelfClosing() {
	e.selfClosing = true
}

// appendChild adds a non-tag node to the element's child list. Adjacent
// text children merge when merge is set, mirroring how the tokenizer
// accumulates character data.
func (e *Element) appendChild(n *Node, merge bool) {
	if merge && len(e.Children) > 0 && n.Type == TextNode {
		if last := e.Children[len(e.Children)-1]; last.Type == TextNode {
			last.Data += n.Data
			return
		}
	}
	e.Children = append(e.Children, n)
}

// render appends the start-tag text: <name attr="v" bare ... /> with the
// solidus present only for latched self-closing elements. Unchanged
// attributes keep the quote character they carried in the source.
func (e *Element) render(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for i := range e.attrs {
		a := &e.attrs[i]
		b.WriteByte(' ')
		b.WriteString(a.Key)
		if !a.HasValue {
			continue
		}
		q := e.quote
		if a.quote != 0 && !a.changed {
			q = a.quote
		}
		b.WriteByte('=')
		b.WriteByte(q)
		b.WriteString(a.Val)
		b.WriteByte(q)
	}
	if e.selfClosing {
		b.WriteString(" /")
	}
	b.WriteByte('>')
}
