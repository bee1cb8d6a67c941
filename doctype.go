package srihtml

import "strings"

// parseDoctype validates the text of a DOCTYPE declaration (everything
// between <! and >, starting with the doctype keyword) and returns the text
// to re-serialize. Grammar errors that browsers paper over by switching to
// quirks mode are returned as ErrQuirksMode instead.
//
// Recoverable sloppiness is normalized: missing whitespace after the
// doctype keyword, after PUBLIC/SYSTEM and between the two identifiers is
// reinserted, runs of whitespace inside identifiers collapse, and extra
// tokens after a valid system identifier are dropped. A declaration that
// needed none of that is kept verbatim.
func parseDoctype(decl string) (string, error) {
	if len(decl) > 7 && !isSpace(decl[7]) {
		decl = decl[:7] + " " + decl[7:]
	}
	pos := skipSpace(decl, 7)

	nameStart := pos
	for pos < len(decl) && !isSpace(decl[pos]) {
		pos++
	}
	name := decl[nameStart:pos]
	if !strings.EqualFold(name, "html") {
		return "", ErrQuirksMode
	}
	pos = skipSpace(decl, pos)
	if pos == len(decl) {
		return decl, nil
	}

	if len(decl)-pos < 6 {
		return "", ErrQuirksMode
	}
	keyword := decl[pos : pos+6]
	var system bool
	switch strings.ToUpper(keyword) {
	case "SYSTEM":
		system = true
	case "PUBLIC":
	default:
		return "", ErrQuirksMode
	}
	pos += 6
	if pos < len(decl) && !isSpace(decl[pos]) {
		decl = decl[:pos] + " " + decl[pos:]
	}
	pos = skipSpace(decl, pos)

	id1, pos, err := doctypeIdentifier(decl, pos)
	if err != nil {
		return "", err
	}
	rest := skipSpace(decl, pos)
	if rest == len(decl) {
		// Keyword plus one identifier, nothing trailing: covers both the
		// legacy-compat form and a PUBLIC identifier used alone.
		return decl, nil
	}

	first := strings.Fields(decl)[0]
	if system {
		return first + " " + name + " " + keyword + " " + normalizeDoctypeID(id1), nil
	}
	id2, _, err := doctypeIdentifier(decl, rest)
	if err != nil {
		return "", err
	}
	return first + " " + name + " " + keyword + " " +
		normalizeDoctypeID(id1) + " " + normalizeDoctypeID(id2), nil
}

// doctypeIdentifier consumes one quoted identifier starting at pos. A
// missing, unquoted or unterminated identifier is a quirks-mode trigger.
func doctypeIdentifier(decl string, pos int) (string, int, error) {
	if pos >= len(decl) {
		return "", 0, ErrQuirksMode
	}
	q := decl[pos]
	if q != '"' && q != '\'' {
		return "", 0, ErrQuirksMode
	}
	end := strings.IndexByte(decl[pos+1:], q)
	if end < 0 {
		return "", 0, ErrQuirksMode
	}
	end = pos + 1 + end
	return decl[pos : end+1], end + 1, nil
}

// normalizeDoctypeID collapses internal whitespace runs in an identifier to
// single spaces.
func normalizeDoctypeID(id string) string {
	return strings.Join(strings.Fields(id), " ")
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}
