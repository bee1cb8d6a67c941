package srihtml

import (
	"io"
	"log/slog"
	"strings"
)

// discardLogger keeps the nil-Logger path allocation-free.
// TODO: replace with slog.DiscardHandler once the toolchain floor is 1.24.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// A Parser converts HTML text into a flat node sequence and back,
// preserving the original formatting except where the HTML5 parse-error
// recovery rules mandate a correction. A Parser holds the state of one
// logical document; it is not safe for concurrent use.
//
// The zero value is not usable; construct with New or NewWithQuote.
type Parser struct {
	// Logger receives non-fatal parse warnings. When nil, warnings are
	// still collected in Warnings but nothing is logged.
	Logger *slog.Logger

	buf     string // pending unconsumed input
	rawElem string // open raw-text element (script or style), or ""

	quote      byte // attribute quote style; 0 until detected from input
	quoteFixed bool // quote was set by the caller, never auto-detect

	nodes    []*Node
	stack    []*Element
	sriTags  []*Element
	warnings []Warning
	badSelf  []badClose

	inXML        bool // inside an svg or math subtree
	seenPreamble bool // a DOCTYPE was accepted (or attempted)
	seenContent  bool // content other than whitespace and comments emitted
}

// badClose records a non-void HTML element written with a trailing solidus,
// together with the element that was open when it appeared. A synthetic end
// tag is emitted when the enclosing element closes, or at the end of the
// feed for the leftovers.
type badClose struct {
	elem      *Element
	enclosing *Element // nil when the stack was empty
}

// New returns a Parser that adopts the quote style of the first quoted
// attribute value it sees, defaulting to double quotes.
func New() *Parser {
	return &Parser{}
}

// NewWithQuote returns a Parser that re-serializes changed attribute values
// with the given quote character (' or ") regardless of the input style.
func NewWithQuote(quote byte) *Parser {
	return &Parser{quote: quote, quoteFixed: true}
}

// Reset discards all document state: nodes, open elements, SRI index,
// warnings and pending input. The configured quote style survives.
func (p *Parser) Reset() {
	p.buf = ""
	p.rawElem = ""
	p.nodes = nil
	p.stack = nil
	p.sriTags = nil
	p.warnings = nil
	p.badSelf = nil
	p.inXML = false
	p.seenPreamble = false
	p.seenContent = false
	if !p.quoteFixed {
		p.quote = 0
	}
}

// Feed parses a chunk of the document. With clean set the parser is Reset
// first, so the chunk starts a new document; otherwise it continues the
// current one, and a construct split across chunk boundaries is held until
// enough input arrives. Call Stringify to finalize the input and render.
//
// A non-nil error is fatal: the document cannot be represented losslessly
// and the parser state is undefined until the next Reset.
func (p *Parser) Feed(data string, clean bool) error {
	if clean {
		p.Reset()
		p.buf = data
	} else {
		p.buf += data
	}
	// After Reset, so the advisory survives a clean feed.
	if hasSurrogate(data) {
		p.warn(WarnSurrogateInInput, msgSurrogateInInput)
	}
	if err := p.scan(false); err != nil {
		return err
	}
	p.flushBadSelfClosing()
	return nil
}

// Nodes returns the flat node sequence parsed so far, in document order.
// The slice is live parser state; callers must not reorder it.
func (p *Parser) Nodes() []*Node {
	return p.nodes
}

// SRITags returns the script and link elements that carry an integrity
// attribute, in document order. Mutating an element through this slice is
// the intended way to rewrite hashes before Stringify.
func (p *Parser) SRITags() []*Element {
	return p.sriTags
}

// Warnings returns the non-fatal diagnostics collected since the last
// Reset.
func (p *Parser) Warnings() []Warning {
	return p.warnings
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return discardLogger
}

func (p *Parser) warn(code WarningCode, msg string) {
	p.warnings = append(p.warnings, Warning{Code: code, Message: msg})
	p.logger().Warn(msg, "code", int(code))
}

// addText emits literal character data. Adjacent text nodes merge so a
// document region assembled from several scans stays one node.
func (p *Parser) addText(s string, merge bool) {
	if s == "" {
		return
	}
	if strings.TrimSpace(s) != "" {
		p.seenContent = true
	}
	if merge && len(p.nodes) > 0 {
		// The top element's last child is this same node, so the merge is
		// visible through both views.
		if last := p.nodes[len(p.nodes)-1]; last.Type == TextNode {
			last.Data += s
			return
		}
	}
	n := &Node{Type: TextNode, Data: s}
	if len(p.stack) > 0 {
		p.stack[len(p.stack)-1].appendChild(n, false)
	}
	p.nodes = append(p.nodes, n)
}

// addSpecial emits a comment-like node. Declarations join the flat sequence
// only; everything else is also mirrored into the open element's children.
// Comments never count as content for the DOCTYPE placement rule.
func (p *Parser) addSpecial(t NodeType, data string) {
	n := &Node{Type: t, Data: data}
	if t == DeclarationNode {
		p.nodes = append(p.nodes, n)
		return
	}
	if t != CommentNode {
		p.seenContent = true
	}
	if len(p.stack) > 0 {
		p.stack[len(p.stack)-1].appendChild(n, false)
	}
	p.nodes = append(p.nodes, n)
}

// startTag materializes a parsed start tag: name case normalization,
// foreign-content entry, void and self-closing handling, and the SRI index.
func (p *Parser) startTag(rawName string, attrs []Attribute, selfClosing bool) {
	p.seenContent = true
	lower := strings.ToLower(rawName)
	if lower == "svg" || lower == "math" {
		p.inXML = true
	}
	name := lower
	if p.inXML {
		name = xmlName(rawName)
	}

	e := &Element{
		Name:  name,
		Void:  isVoid(lower),
		quote: p.quote,
	}
	if e.quote == 0 {
		e.quote = '"'
	}
	for _, a := range attrs {
		if p.inXML {
			a.Key = xmlName(a.Key)
		} else {
			a.Key = strings.ToLower(a.Key)
		}
		e.appendAttr(a)
	}

	switch {
	case p.inXML && selfClosing:
		e.selfClosing = true
	case selfClosing && !e.Void:
		// In HTML the trailing solidus on a non-void element is a parse
		// error: the tag opens normally and a synthetic end tag is owed.
		var enc *Element
		if len(p.stack) > 0 {
			enc = p.stack[len(p.stack)-1]
		}
		p.badSelf = append(p.badSelf, badClose{elem: e, enclosing: enc})
	}

	p.nodes = append(p.nodes, &Node{Type: StartTagNode, Elem: e})
	if !e.Void && !selfClosing {
		p.stack = append(p.stack, e)
	}
	if (e.Name == "script" || e.Name == "link") && e.HasAttr("integrity") {
		p.sriTags = append(p.sriTags, e)
	}
}

// endTag closes the innermost open element. End tags for void elements and
// end tags that do not match the open element are dropped, except inside
// foreign content where a mismatch is fatal (XML has no recovery).
func (p *Parser) endTag(rawName string, off int) error {
	name := strings.ToLower(rawName)
	if p.inXML {
		if len(p.stack) == 0 {
			return &ParseError{Offset: off, Err: ErrForeignEndTagMismatch}
		}
		top := p.stack[len(p.stack)-1]
		if name != strings.ToLower(top.Name) {
			return &ParseError{Offset: off, Err: ErrForeignEndTagMismatch}
		}
		name = top.Name
	}
	if lower := strings.ToLower(name); lower == "svg" || lower == "math" {
		p.inXML = false
	}
	if isVoid(name) {
		return nil
	}
	if len(p.stack) == 0 {
		return nil
	}
	top := p.stack[len(p.stack)-1]
	if name != top.Name {
		return nil
	}
	p.stack = p.stack[:len(p.stack)-1]
	if n := len(p.badSelf); n > 0 && p.badSelf[n-1].enclosing == top {
		// The mis-closed element ends before its enclosing element does.
		p.nodes = append(p.nodes, &Node{Type: EndTagNode, Elem: p.badSelf[n-1].elem})
		p.badSelf = p.badSelf[:n-1]
	}
	p.nodes = append(p.nodes, &Node{Type: EndTagNode, Elem: top})
	return nil
}

// flushBadSelfClosing emits the owed synthetic end tags, innermost first.
func (p *Parser) flushBadSelfClosing() {
	for i := len(p.badSelf) - 1; i >= 0; i-- {
		p.nodes = append(p.nodes, &Node{Type: EndTagNode, Elem: p.badSelf[i].elem})
	}
	p.badSelf = p.badSelf[:0]
}

// handleDecl validates a DOCTYPE. Only the standards-mode forms are
// accepted; anything that would put a browser in quirks mode is fatal, as
// is a DOCTYPE after non-whitespace content.
func (p *Parser) handleDecl(decl string, off int) error {
	if p.seenContent && !p.seenPreamble {
		return &ParseError{Offset: off, Err: ErrContentBeforeDoctype}
	}
	p.seenPreamble = true
	out, err := parseDoctype(decl)
	if err != nil {
		return &ParseError{Offset: off, Err: err}
	}
	p.addSpecial(DeclarationNode, out)
	return nil
}
