package textscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reassemble(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Value)
	}
	return b.String()
}

func TestParseMixedText(t *testing.T) {
	segments := Parse("hello @bob check #fun")

	require.Len(t, segments, 4)
	assert.Equal(t, Segment{KindLiteral, "hello "}, segments[0])
	assert.Equal(t, Segment{KindMention, "@bob"}, segments[1])
	assert.Equal(t, Segment{KindLiteral, " check "}, segments[2])
	assert.Equal(t, Segment{KindHashtag, "#fun"}, segments[3])
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text with no entities",
		"hello @bob check #fun",
		"@leading mention",
		"trailing mention @bob",
		"#tag",
		"@a @b @c",
		"#one#two#three",
		"bare @ sigil and bare # too",
		"@",
		"#",
		"email-ish not@really an entity",
		"unicode @日本語 and #डेटा too",
		"punctuation keeps @bob! attached",
		"  leading whitespace @x",
	}

	for _, input := range inputs {
		segments := Parse(input)
		assert.Equal(t, input, reassemble(segments), "input %q must survive a parse round-trip", input)
	}
}

func TestParseBareSigilStaysLiteral(t *testing.T) {
	segments := Parse("an @ alone")
	require.Len(t, segments, 1)
	assert.Equal(t, KindLiteral, segments[0].Kind)

	segments = Parse("trailing @")
	require.Len(t, segments, 1)
	assert.Equal(t, KindLiteral, segments[0].Kind)
}

func TestParseAdjacentEntities(t *testing.T) {
	segments := Parse("#one#two")
	require.Len(t, segments, 2)
	assert.Equal(t, Segment{KindHashtag, "#one"}, segments[0])
	assert.Equal(t, Segment{KindHashtag, "#two"}, segments[1])
}

func TestParseHashStopsWord(t *testing.T) {
	// '#' terminates a word, so a mention runs up to the next '#'.
	segments := Parse("@bob#fun")
	require.Len(t, segments, 2)
	assert.Equal(t, Segment{KindMention, "@bob"}, segments[0])
	assert.Equal(t, Segment{KindHashtag, "#fun"}, segments[1])
}

func TestSegmentAccessors(t *testing.T) {
	assert.Equal(t, "bob", Segment{KindMention, "@bob"}.Username())
	assert.Equal(t, "", Segment{KindHashtag, "#fun"}.Username())
	assert.Equal(t, "fun", Segment{KindHashtag, "#fun"}.Tag())
	assert.Equal(t, "", Segment{KindLiteral, "text"}.Tag())
}

func TestMentionsAndHashtags(t *testing.T) {
	text := "cc @alice @bob on #go and #go again"

	assert.Equal(t, []string{"alice", "bob"}, Mentions(text))
	assert.Equal(t, []string{"go", "go"}, Hashtags(text), "no deduplication")
	assert.Nil(t, Mentions("nothing here"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "mention", KindMention.String())
	assert.Equal(t, "hashtag", KindHashtag.String())
	assert.Equal(t, "literal", KindLiteral.String())
}
