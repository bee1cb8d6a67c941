package srihtml

import "strings"

// Stringify finalizes any pending input and renders the flat node sequence
// back to HTML text. Rendering verifies nesting as it goes: every end tag
// must pair, by identity, with an element still on the open-element stack.
// The element need not be on top: synthetic end tags for a mis-closed
// element can cross an element opened after it, and such crossings render
// in sequence order. Elements still open at the end of the sequence are
// fine; a partial document renders as far as it goes.
//
// Stringify may be called repeatedly; later Feed calls extend the document.
func (p *Parser) Stringify() (string, error) {
	if len(p.buf) > 0 {
		if err := p.scan(true); err != nil {
			return "", err
		}
		p.flushBadSelfClosing()
	}

	var b strings.Builder
	var open []*Element
	for _, n := range p.nodes {
		switch n.Type {
		case StartTagNode:
			if !n.Elem.Void && !n.Elem.selfClosing {
				open = append(open, n.Elem)
			}
		case EndTagNode:
			i := len(open) - 1
			for i >= 0 && open[i] != n.Elem {
				i--
			}
			if i < 0 {
				return "", ErrUnbalancedEndTag
			}
			open = append(open[:i], open[i+1:]...)
		}
		n.render(&b)
	}
	return b.String(), nil
}
