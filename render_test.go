package srihtml

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSRITagIndex(t *testing.T) {
	p := New()
	require.NoError(t, p.Feed(roundTripDoc, true))

	tags := p.SRITags()
	require.Len(t, tags, 2)
	assert.Equal(t, "link", tags[0].Name)
	assert.Equal(t, "script", tags[1].Name)

	v, ok := tags[0].Attr("integrity")
	assert.True(t, ok)
	assert.Equal(t, "sha384-AAAA", v)
}

func TestSRIHashInjection(t *testing.T) {
	p := New()
	require.NoError(t, p.Feed(roundTripDoc, true))

	for _, e := range p.SRITags() {
		e.SetAttr("integrity", "sha384-NEW")
	}
	out, err := p.Stringify()
	require.NoError(t, err)

	want := strings.ReplaceAll(
		strings.ReplaceAll(roundTripDoc, "sha384-AAAA", "sha384-NEW"),
		"sha384-BBBB", "sha384-NEW")
	assert.Equal(t, want, out)
}

func TestSRITagsWithoutIntegrityAreSkipped(t *testing.T) {
	p := New()
	require.NoError(t, p.Feed(`<script src="a.js"></script><link rel="icon" href="i.png"><img integrity="x">`, true))
	assert.Empty(t, p.SRITags())
}

// The foreign-content path claims to keep SVG well-formed XML; check the
// output with an actual XML parser.
func TestSVGOutputIsWellFormedXML(t *testing.T) {
	in := `<svg viewBox="0 0 10 10"><defs><linearGradient id="g"><stop offset="0" /></linearGradient></defs><text>a</text><![CDATA[raw < data]]></svg>`
	p := New()
	require.NoError(t, p.Feed(in, true))
	out, err := p.Stringify()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "0 0 10 10", root.SelectAttrValue("viewBox", ""))
}

func TestStringifyUnbalanced(t *testing.T) {
	t.Run("end_tag_for_wrong_element", func(t *testing.T) {
		a := NewElement("div")
		b := NewElement("span")
		p := New()
		p.nodes = []*Node{
			{Type: StartTagNode, Elem: a},
			{Type: EndTagNode, Elem: b},
		}
		_, err := p.Stringify()
		assert.ErrorIs(t, err, ErrUnbalancedEndTag)
	})
	t.Run("end_tag_without_start", func(t *testing.T) {
		p := New()
		p.nodes = []*Node{{Type: EndTagNode, Elem: NewElement("div")}}
		_, err := p.Stringify()
		assert.ErrorIs(t, err, ErrUnbalancedEndTag)
	})
	t.Run("end_tag_emitted_twice", func(t *testing.T) {
		a := NewElement("div")
		p := New()
		p.nodes = []*Node{
			{Type: StartTagNode, Elem: a},
			{Type: EndTagNode, Elem: a},
			{Type: EndTagNode, Elem: a},
		}
		_, err := p.Stringify()
		assert.ErrorIs(t, err, ErrUnbalancedEndTag)
	})
	t.Run("crossed_end_tags_render_in_order", func(t *testing.T) {
		a := NewElement("div")
		b := NewElement("span")
		p := New()
		p.nodes = []*Node{
			{Type: StartTagNode, Elem: a},
			{Type: StartTagNode, Elem: b},
			{Type: EndTagNode, Elem: a},
			{Type: EndTagNode, Elem: b},
		}
		out, err := p.Stringify()
		require.NoError(t, err)
		assert.Equal(t, "<div><span></div></span>", out)
	})
	t.Run("unclosed_elements_are_fine", func(t *testing.T) {
		p := New()
		require.NoError(t, p.Feed("<div><p>partial", true))
		out, err := p.Stringify()
		require.NoError(t, err)
		assert.Equal(t, "<div><p>partial", out)
	})
}

func TestHandBuiltSequence(t *testing.T) {
	div := NewElement("div", Attribute{Key: "id", Val: "x", HasValue: true})
	p := New()
	p.nodes = []*Node{
		{Type: DeclarationNode, Data: "DOCTYPE html"},
		{Type: StartTagNode, Elem: div},
		{Type: TextNode, Data: "hi"},
		{Type: EndTagNode, Elem: div},
	}
	out, err := p.Stringify()
	require.NoError(t, err)
	assert.Equal(t, `<!DOCTYPE html><div id="x">hi</div>`, out)
}
