package srihtml

import "regexp"

// xmlNameRE matches an XML Name per https://www.w3.org/TR/REC-xml/#NT-Name.
// The generic tokenizer case-folds tag and attribute names; inside foreign
// (SVG/MathML) content names are re-derived with this grammar so their
// original case survives. The surrogate block is absent from the source
// ranges, so the classes are valid RE2.
var xmlNameRE = regexp.MustCompile(`[:A-Z_a-z` +
	`\x{C0}-\x{D6}\x{D8}-\x{F6}\x{F8}-\x{2FF}\x{370}-\x{37D}\x{37F}-\x{1FFF}` +
	`\x{200C}-\x{200D}\x{2070}-\x{218F}\x{2C00}-\x{2FEF}\x{3001}-\x{D7FF}` +
	`\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}\x{10000}-\x{EFFFF}]` +
	`[:A-Z_a-z0-9.\x{B7}` +
	`\x{C0}-\x{D6}\x{D8}-\x{F6}\x{F8}-\x{2FF}\x{300}-\x{36F}\x{370}-\x{37D}` +
	`\x{37F}-\x{1FFF}\x{200C}-\x{200D}\x{203F}-\x{2040}\x{2070}-\x{218F}` +
	`\x{2C00}-\x{2FEF}\x{3001}-\x{D7FF}\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}` +
	`\x{10000}-\x{EFFFF}-]*`)

// xmlName returns the leading XML Name in s, truncating at the first
// character outside the grammar. If s does not begin with a name character
// it is returned unchanged.
func xmlName(s string) string {
	if m := xmlNameRE.FindString(s); m != "" {
		return m
	}
	return s
}
