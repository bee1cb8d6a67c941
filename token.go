package srihtml

import (
	"regexp"
	"strings"
)

// Comment close per the HTML5 recovery rules: --> or the incorrectly
// closed --!>, whichever comes first.
var commentCloseRE = regexp.MustCompile(`--!?>`)

// Marked section close: ] ] > with optional whitespace between.
var markedCloseRE = regexp.MustCompile(`\][ \t\n\r\f\v]*\][ \t\n\r\f\v]*>`)

// Strict end tag form. Anything looser inside raw-text content stays raw,
// and anything looser elsewhere goes through the lenient scan.
var strictEndTagRE = regexp.MustCompile(`^</[ \t\n\r\f\v]*([a-zA-Z][-.a-zA-Z0-9:_]*)[ \t\n\r\f\v]*>$`)

// Candidate end tags that may terminate script/style raw-text content.
var (
	scriptEndRE = regexp.MustCompile(`(?i)</[ \t\n\r\f\v]*script`)
	styleEndRE  = regexp.MustCompile(`(?i)</[ \t\n\r\f\v]*style`)
)

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// isRefNameChar matches the continuation characters of a named character
// reference candidate.
func isRefNameChar(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '-' || b == '.'
}

// isTagNameStop terminates a tag name.
func isTagNameStop(b byte) bool {
	return isSpace(b) || b == '/' || b == '>' || b == 0
}

// isAttrNameStop terminates an attribute name. Unlike the first character,
// continuation characters exclude '='.
func isAttrNameStop(b byte) bool {
	return isSpace(b) || b == '/' || b == '=' || b == '>'
}

// scan consumes as much of the pending buffer as possible, emitting nodes.
// When end is false, a construct that may still be completed by a later
// feed is left in the buffer; when end is true the buffer is input-final
// and the end-of-input recovery rules apply. Every scan helper returns the
// index to resume at, or -1 to stop and keep the buffer from the current
// construct onward.
func (p *Parser) scan(end bool) error {
	buf := p.buf
	n := len(buf)
	i := 0
	for i < n {
		var next int
		var err error
		switch {
		case p.rawElem != "":
			next, err = p.scanRawText(buf, i, end)
		case buf[i] == '&':
			next = p.scanCharRef(buf, i, end)
		case buf[i] != '<':
			if j := strings.IndexAny(buf[i:], "<&"); j >= 0 {
				p.addText(buf[i:i+j], true)
				next = i + j
			} else {
				p.addText(buf[i:], true)
				next = n
			}
		case i+1 < n && isAlpha(buf[i+1]):
			next = p.scanStartTag(buf, i, end)
		case strings.HasPrefix(buf[i:], "</"):
			next, err = p.scanEndTag(buf, i, end)
		case strings.HasPrefix(buf[i:], "<!--"):
			next = p.scanComment(buf, i, end)
		case strings.HasPrefix(buf[i:], "<?"):
			next = p.scanPI(buf, i, end)
		case strings.HasPrefix(buf[i:], "<!["):
			next = p.scanMarkedSection(buf, i, end)
		case strings.HasPrefix(buf[i:], "<!"):
			next, err = p.scanDeclaration(buf, i, end)
		default:
			// A lone < that opens no construct is literal text. At the
			// very end of a non-final chunk it may still grow into a tag.
			if i+1 < n || end {
				p.addText("<", true)
				next = i + 1
			} else {
				next = -1
			}
		}
		if err != nil {
			if next >= 0 {
				i = next
			}
			p.buf = buf[i:]
			return err
		}
		if next < 0 {
			break
		}
		i = next
	}
	p.buf = buf[i:]
	return nil
}

// scanRawText consumes script/style content, which is raw text up to the
// matching case-insensitive end tag. A </...> run that is not a strict end
// tag for the raw element stays part of the content.
func (p *Parser) scanRawText(buf string, i int, end bool) (int, error) {
	n := len(buf)
	re := scriptEndRE
	if p.rawElem == "style" {
		re = styleEndRE
	}
	m := re.FindStringIndex(buf[i:])
	if m == nil {
		if !end {
			return -1, nil
		}
		p.addText(buf[i:], true)
		return n, nil
	}
	j := i + m[0]
	gt := strings.IndexByte(buf[j:], '>')
	if gt < 0 {
		if !end {
			return -1, nil
		}
		p.addText(buf[i:], true)
		return n, nil
	}
	if j > i {
		p.addText(buf[i:j], true)
	}
	gtAbs := j + gt + 1
	if sm := strictEndTagRE.FindStringSubmatch(buf[j:gtAbs]); sm != nil && strings.EqualFold(sm[1], p.rawElem) {
		p.rawElem = ""
		return gtAbs, p.endTag(sm[1], j)
	}
	p.addText(buf[j:gtAbs], true)
	return gtAbs, nil
}

// findTagEnd returns the index just past the > that terminates the tag
// opening at i, skipping quoted spans, or -1 if the tag is still
// incomplete.
func findTagEnd(buf string, i int) int {
	j := i + 1
	for j < len(buf) {
		switch buf[j] {
		case '>':
			return j + 1
		case '"', '\'':
			k := strings.IndexByte(buf[j+1:], buf[j])
			if k < 0 {
				return -1
			}
			j += k + 2
		default:
			j++
		}
	}
	return -1
}

// scanStartTag parses a start tag. An incomplete start tag at the end of
// the input is dropped entirely.
func (p *Parser) scanStartTag(buf string, i int, end bool) int {
	gt := findTagEnd(buf, i)
	if gt < 0 {
		if !end {
			return -1
		}
		return len(buf)
	}
	m := gt - 1 // position of '>'

	k := i + 2
	for k < m && !isTagNameStop(buf[k]) {
		k++
	}
	rawName := buf[i+1 : k]

	var attrs []Attribute
	selfClosing := false
	pos := k
	for pos < m {
		c := buf[pos]
		if isSpace(c) {
			pos++
			continue
		}
		if c == '/' {
			if pos+1 == m {
				selfClosing = true
			}
			// A solidus anywhere else in the tag is a parse error and is
			// dropped.
			pos++
			continue
		}
		// Attribute name: any run not broken by whitespace, /, = or >.
		// The first character may be = (unexpected-equals-sign parse
		// error: the sign becomes part of the name).
		ns := pos
		pos++
		for pos < m && !isAttrNameStop(buf[pos]) {
			pos++
		}
		a := Attribute{Key: buf[ns:pos]}
		q := pos
		for q < m && isSpace(buf[q]) {
			q++
		}
		if q < m && buf[q] == '=' {
			for q < m && buf[q] == '=' {
				q++
			}
			for q < m && isSpace(buf[q]) {
				q++
			}
			a.HasValue = true
			if q < m && (buf[q] == '"' || buf[q] == '\'') {
				qc := buf[q]
				v := strings.IndexByte(buf[q+1:gt], qc)
				if v < 0 {
					v = m - q - 1
				}
				a.Val = buf[q+1 : q+1+v]
				a.quote = qc
				if !p.quoteFixed && p.quote == 0 {
					p.quote = qc
				}
				pos = q + v + 2
			} else {
				vs := q
				for q < m && !isSpace(buf[q]) {
					q++
				}
				a.Val = buf[vs:q]
				pos = q
			}
		}
		attrs = append(attrs, a)
	}

	p.startTag(rawName, attrs, selfClosing)
	if !selfClosing {
		if l := strings.ToLower(rawName); l == "script" || l == "style" {
			p.rawElem = l
		}
	}
	return gt
}

// scanEndTag parses an end tag leniently: extraneous attributes and a
// trailing solidus are ignored, </> vanishes, and a non-letter tag name
// demotes the whole run to a bogus comment. An incomplete end tag at the
// end of the input stays literal text.
func (p *Parser) scanEndTag(buf string, i int, end bool) (int, error) {
	n := len(buf)
	rel := strings.IndexByte(buf[i+1:], '>')
	if rel < 0 {
		if !end {
			return -1, nil
		}
		p.addText(buf[i:], true)
		return n, nil
	}
	gt := i + 1 + rel + 1

	if m := strictEndTagRE.FindStringSubmatch(buf[i:gt]); m != nil {
		return gt, p.endTag(m[1], i)
	}
	if i+2 < n && isAlpha(buf[i+2]) {
		k := i + 2
		for k < n && !isTagNameStop(buf[k]) {
			k++
		}
		// Junk between the name and the > is dropped.
		return gt, p.endTag(buf[i+2:k], i)
	}
	if strings.HasPrefix(buf[i:], "</>") {
		return i + 3, nil
	}
	p.addSpecial(CommentNode, buf[i+2:gt-1])
	return gt, nil
}

// scanComment parses <!--...-->, applying the abrupt-closing and
// incorrectly-closed recovery rules. An unterminated comment at the end of
// the input keeps its text and is closed by the serializer's --> suffix.
func (p *Parser) scanComment(buf string, i int, end bool) int {
	if strings.HasPrefix(buf[i:], "<!-->") {
		p.addSpecial(CommentNode, "")
		return i + 5
	}
	if strings.HasPrefix(buf[i:], "<!--->") {
		p.addSpecial(CommentNode, "")
		return i + 6
	}
	if m := commentCloseRE.FindStringIndex(buf[i+4:]); m != nil {
		p.addSpecial(CommentNode, buf[i+4:i+4+m[0]])
		return i + 4 + m[1]
	}
	if !end {
		return -1
	}
	p.addSpecial(CommentNode, buf[i+4:])
	return len(buf)
}

// scanPI parses <?...>, which HTML demotes to a comment wrapping the
// original text including the question mark.
func (p *Parser) scanPI(buf string, i int, end bool) int {
	rel := strings.IndexByte(buf[i+2:], '>')
	if rel < 0 {
		if !end {
			return -1
		}
		p.addSpecial(CommentNode, buf[i+1:])
		return len(buf)
	}
	p.addSpecial(CommentNode, buf[i+1:i+2+rel])
	return i + 2 + rel + 1
}

// scanMarkedSection parses <![...]]>. Only CDATA sections get marked
// section treatment; any other section name is demoted to a comment like
// other malformed declarations.
func (p *Parser) scanMarkedSection(buf string, i int, end bool) int {
	n := len(buf)
	if n-i < 9 && !end {
		// Not enough input to rule the CDATA[ prefix in or out.
		if strings.HasPrefix(strings.ToLower("cdata["), strings.ToLower(buf[i+3:])) {
			return -1
		}
	}
	if n-i >= 9 && strings.EqualFold(buf[i+3:i+9], "cdata[") {
		if m := markedCloseRE.FindStringIndex(buf[i+3:]); m != nil {
			p.unknownDecl(buf[i+3 : i+3+m[0]])
			return i + 3 + m[1]
		}
		if !end {
			return -1
		}
		// Truncated CDATA at end of input: take through the first > if
		// any, strip the partial closer and let the node's ]> suffix and
		// a synthetic ] close it.
		next := n
		content := buf[i+3:]
		if g := strings.IndexByte(buf[i+1:], '>'); g >= 0 {
			next = i + 1 + g + 1
			content = buf[i+3 : next]
		}
		p.unknownDecl(content)
		if rem := strings.TrimSpace(buf[next:]); rem == "]" || rem == "]]" {
			next = n
		}
		return next
	}
	return p.scanBogusComment(buf, i, end)
}

// unknownDecl emits a CDATA section: verbatim inside foreign content,
// demoted to a comment outside it. Trailing close brackets are absorbed so
// the fixed ] suffix never duplicates them.
func (p *Parser) unknownDecl(content string) {
	data := strings.TrimRight(content, "]")
	if p.inXML {
		p.addSpecial(UnknownDeclNode, data+"]")
	} else {
		p.addSpecial(CommentNode, "["+data+"]]")
	}
}

// scanBogusComment demotes a malformed declaration to a comment wrapping
// its original text. Truncated at the end of the input, the text stays
// literal.
func (p *Parser) scanBogusComment(buf string, i int, end bool) int {
	rel := strings.IndexByte(buf[i+2:], '>')
	if rel < 0 {
		if !end {
			return -1
		}
		p.addText(buf[i:], true)
		return len(buf)
	}
	p.addSpecial(CommentNode, buf[i+2:i+2+rel])
	return i + 2 + rel + 1
}

// scanDeclaration dispatches <!...: a DOCTYPE goes through the declaration
// validator, everything else is a bogus comment.
func (p *Parser) scanDeclaration(buf string, i int, end bool) (int, error) {
	n := len(buf)
	if n-i >= 9 && strings.EqualFold(buf[i+2:i+9], "doctype") {
		rel := strings.IndexByte(buf[i+9:], '>')
		if rel < 0 {
			if !end {
				return -1, nil
			}
			// EOF in DOCTYPE: quirks mode.
			p.seenPreamble = true
			return n, &ParseError{Offset: i, Err: ErrQuirksMode}
		}
		gt := i + 9 + rel
		return gt + 1, p.handleDecl(buf[i+2:gt], i)
	}
	return p.scanBogusComment(buf, i, end), nil
}

// scanCharRef decodes a character reference in text. Named references
// resolve by greedy longest match; numeric references are validated and
// may substitute U+FFFD with a warning. Unresolvable references degrade to
// literal text.
func (p *Parser) scanCharRef(buf string, i int, end bool) int {
	n := len(buf)
	j := i + 1
	if j >= n {
		if !end {
			return -1
		}
		p.addText("&", true)
		return n
	}
	switch {
	case buf[j] == '#':
		k := j + 1
		hexMode := false
		if k < n && (buf[k] == 'x' || buf[k] == 'X') {
			hexMode = true
			k++
		}
		ds := k
		for k < n && ((hexMode && isHexDigit(buf[k])) || (!hexMode && isDigit(buf[k]))) {
			k++
		}
		if k >= n && !end {
			return -1
		}
		if k > ds {
			name := buf[j+1 : k]
			if k < n && buf[k] == ';' {
				p.addText(p.resolveNumericRef(name), true)
				return k + 1
			}
			if k < n {
				// Missing semicolon: the reference still resolves and the
				// terminator stays in the input.
				p.addText(p.resolveNumericRef(name), true)
				return k
			}
			p.addText("&#"+name, true)
			return k
		}
		// No digits at all. If a semicolon ends the token within this
		// text run, the whole &#...; sequence is literal text; otherwise
		// everything from here on is.
		seg := buf[j+1:]
		sc := strings.IndexByte(seg, ';')
		stop := strings.IndexAny(seg, "<&")
		if sc >= 0 && (stop < 0 || sc < stop) {
			p.addText("&#"+seg[:sc]+";", true)
			return j + 1 + sc + 1
		}
		if !end {
			return -1
		}
		p.addText(buf[i:], true)
		return n
	case isAlpha(buf[j]):
		k := j + 1
		for k < n && isRefNameChar(buf[k]) {
			k++
		}
		if k >= n && !end {
			return -1
		}
		name := buf[j:k]
		if k < n && buf[k] == ';' {
			p.addText(resolveNamedRef(name), true)
			return k + 1
		}
		p.addText(resolveNamedRef(name), true)
		return k
	default:
		p.addText("&", true)
		return j
	}
}
