// Package srihtml parses HTML documents into a flat node sequence that can
// be re-serialized byte for byte, so that subresource integrity hashes can
// be injected into script and link tags without disturbing anything else.
//
// A spec-conformant document round-trips unchanged through Feed and
// Stringify. Malformed input is repaired the way the HTML5 parse-error
// recovery rules prescribe (comments get closed, bogus markup is demoted to
// comments, stray solidi are dropped, and so on), which is the only case
// where output differs from input. Documents that a browser would render in
// quirks mode are rejected outright.
//
// Typical use:
//
//	p := srihtml.New()
//	if err := p.Feed(doc, true); err != nil { ... }
//	for _, e := range p.SRITags() {
//		e.SetAttr("integrity", hash)
//	}
//	out, err := p.Stringify()
package srihtml
