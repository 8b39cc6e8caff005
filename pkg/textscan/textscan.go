// Package textscan splits free-form post and comment text into literal
// spans and entity spans (@mentions and #hashtags) so the UI can make
// entities clickable. The scan is a single left-to-right pass and the
// segments always concatenate back to the original text exactly.
package textscan

import (
	"strings"
	"unicode"
)

// Kind classifies a segment.
type Kind int

const (
	KindLiteral Kind = iota
	KindMention
	KindHashtag
)

func (k Kind) String() string {
	switch k {
	case KindMention:
		return "mention"
	case KindHashtag:
		return "hashtag"
	default:
		return "literal"
	}
}

// Segment is one span of the input. Value holds the exact source text,
// sigil included for entities.
type Segment struct {
	Kind  Kind
	Value string
}

// Username returns the mention's username without the @ sigil, empty
// for other kinds.
func (s Segment) Username() string {
	if s.Kind != KindMention {
		return ""
	}
	return strings.TrimPrefix(s.Value, "@")
}

// Tag returns the hashtag's name without the # sigil, empty for other
// kinds.
func (s Segment) Tag() string {
	if s.Kind != KindHashtag {
		return ""
	}
	return strings.TrimPrefix(s.Value, "#")
}

// isWordRune reports whether r may appear in an entity word: any rune
// except whitespace and '#'.
func isWordRune(r rune) bool {
	return !unicode.IsSpace(r) && r != '#'
}

// Parse scans text into ordered segments. A sigil followed by no word
// runes stays literal. Adjacent literals are merged, so concatenating
// every segment's Value reproduces the input exactly.
func Parse(text string) []Segment {
	var segments []Segment
	runes := []rune(text)

	emit := func(kind Kind, value string) {
		if value == "" {
			return
		}
		if kind == KindLiteral && len(segments) > 0 && segments[len(segments)-1].Kind == KindLiteral {
			segments[len(segments)-1].Value += value
			return
		}
		segments = append(segments, Segment{Kind: kind, Value: value})
	}

	var literal strings.Builder
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r != '@' && r != '#' {
			literal.WriteRune(r)
			i++
			continue
		}

		// Consume the word after the sigil.
		j := i + 1
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		if j == i+1 {
			// Bare sigil, no word: literal.
			literal.WriteRune(r)
			i++
			continue
		}

		emit(KindLiteral, literal.String())
		literal.Reset()

		kind := KindMention
		if r == '#' {
			kind = KindHashtag
		}
		emit(kind, string(runes[i:j]))
		i = j
	}
	emit(KindLiteral, literal.String())

	return segments
}

// Mentions returns the usernames mentioned in text, in order, without
// deduplication.
func Mentions(text string) []string {
	var out []string
	for _, seg := range Parse(text) {
		if seg.Kind == KindMention {
			out = append(out, seg.Username())
		}
	}
	return out
}

// Hashtags returns the tags used in text, in order, without
// deduplication.
func Hashtags(text string) []string {
	var out []string
	for _, seg := range Parse(text) {
		if seg.Kind == KindHashtag {
			out = append(out, seg.Tag())
		}
	}
	return out
}
