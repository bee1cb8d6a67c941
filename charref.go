package srihtml

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// isNamedRef reports whether "name;" is a WHATWG named character reference.
// The reference table lives in golang.org/x/net/html; membership is probed
// through UnescapeString instead of duplicating the table. UnescapeString
// resolves the longest entity prefix even without a trailing semicolon
// (e.g. "&notx;" decodes its "&not" prefix), so an exact-match test
// compares decoding with and without the appended semicolon: only when
// the semicolon itself was consumed do the two results differ.
func isNamedRef(name string) bool {
	with := html.UnescapeString("&" + name + ";")
	without := html.UnescapeString("&" + name)
	return with != without+";"
}

// resolveNamedRef resolves the candidate token of a named character
// reference (the text between & and its terminator) by greedy longest
// match: the full token is tried first and shortened one character at a
// time. The resolved reference is re-emitted with a semicolon, followed by
// the unconsumed remainder. An unresolvable name is demoted to the literal
// text &amp;name&semi;.
func resolveNamedRef(name string) string {
	for l := len(name); l >= 1; l-- {
		if isNamedRef(name[:l]) {
			return "&" + name[:l] + ";" + name[l:]
		}
	}
	return "&amp;" + name + "&semi;"
}

// resolveNumericRef resolves a numeric character reference token (the text
// between &# and its terminator, including any x/X hex prefix). Tokens that
// do not parse as integers are emitted literally. Parsed code points
// outside the Unicode range, in either surrogate range, or equal to zero
// are substituted with U+FFFD and reported as distinct non-fatal warnings;
// every other code point passes through unchanged.
func (p *Parser) resolveNumericRef(name string) string {
	var num int64
	var err error
	if (strings.HasPrefix(name, "x") || strings.HasPrefix(name, "X")) && len(name) >= 2 {
		num, err = strconv.ParseInt(name[1:], 16, 64)
	} else {
		num, err = strconv.ParseInt(name, 10, 64)
	}
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return "&#" + name + ";"
		}
		// Too large for int64 is still a real number, just far outside
		// the Unicode range.
		num = 1 << 62
	}
	switch {
	case num > 0x10FFFF:
		name = "xFFFD"
		p.warn(WarnCharRefOutOfRange, msgCharRefOutOfRange)
	case num >= 0xD800 && num <= 0xDFFF:
		name = "xFFFD"
		p.warn(WarnCharRefSurrogate, msgCharRefSurrogate)
	case num == 0:
		name = "xFFFD"
		p.warn(WarnCharRefNull, msgCharRefNull)
	}
	return "&#" + name + ";"
}

// hasSurrogate reports whether s contains a UTF-16 surrogate code point.
// Go strings cannot hold surrogates as runes; when present they appear as
// their three-byte WTF-8 encoding 0xED 0xA0..0xBF 0x80..0xBF.
func hasSurrogate(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == 0xED && s[i+1] >= 0xA0 && s[i+1] <= 0xBF && s[i+2] >= 0x80 && s[i+2] <= 0xBF {
			return true
		}
	}
	return false
}
