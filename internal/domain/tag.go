package domain

import "strings"

// TagMode selects how a TagSet normalizes values on Add.
type TagMode int

const (
	// TagModePlain stores trimmed values as entered (audience tags).
	TagModePlain TagMode = iota
	// TagModeHashtag additionally prefixes "#" when it is missing.
	TagModeHashtag
)

// TagSet is an ordered, append-only list of short labels.
// Duplicates are kept: the user controls the exact list, and Remove drops
// every matching entry.
type TagSet struct {
	mode TagMode
	tags []string
}

// NewTagSet returns an empty TagSet in the given mode.
func NewTagSet(mode TagMode) *TagSet {
	return &TagSet{mode: mode, tags: []string{}}
}

// NewTagSetFrom returns a TagSet seeded with values, each passed through Add.
func NewTagSetFrom(mode TagMode, values []string) *TagSet {
	ts := NewTagSet(mode)
	for _, v := range values {
		ts.Add(v)
	}
	return ts
}

// NormalizeTag returns the value Add would store for raw, and false when raw
// is blank.
func NormalizeTag(mode TagMode, raw string) (string, bool) {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return "", false
	}
	if mode == TagModeHashtag && !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag, true
}

// Add appends the normalized form of raw. Blank input is ignored.
// Reports whether a tag was appended.
func (ts *TagSet) Add(raw string) bool {
	tag, ok := NormalizeTag(ts.mode, raw)
	if !ok {
		return false
	}
	ts.tags = append(ts.tags, tag)
	return true
}

// Remove deletes every entry equal to value and returns how many were removed.
func (ts *TagSet) Remove(value string) int {
	kept := ts.tags[:0]
	removed := 0
	for _, t := range ts.tags {
		if t == value {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	ts.tags = kept
	return removed
}

// Len returns the number of entries, duplicates included.
func (ts *TagSet) Len() int {
	return len(ts.tags)
}

// Mode returns the normalization mode.
func (ts *TagSet) Mode() TagMode {
	return ts.mode
}

// Values returns a copy of the entries in insertion order. Never nil.
func (ts *TagSet) Values() []string {
	out := make([]string, len(ts.tags))
	copy(out, ts.tags)
	return out
}
