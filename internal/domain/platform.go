package domain

import (
	"fmt"
	"strings"
)

// Platform identifies a distribution channel for a campaign.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformLinkedIn  Platform = "LinkedIn"
)

// KnownPlatforms lists every supported platform in display order.
var KnownPlatforms = []Platform{PlatformInstagram, PlatformLinkedIn}

// ParsePlatform resolves a platform name case-insensitively.
// Returns ErrValidation for names outside KnownPlatforms.
func ParsePlatform(name string) (Platform, error) {
	name = strings.TrimSpace(name)
	for _, p := range KnownPlatforms {
		if strings.EqualFold(name, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown platform %q", ErrValidation, name)
}

// SupportsTitle reports whether posts on p carry a separate title.
func (p Platform) SupportsTitle() bool {
	return p == PlatformLinkedIn
}

// PlatformSelection is the ordered set of platforms chosen for a campaign.
// Emptiness is not enforced here; generate rejects an empty selection.
type PlatformSelection []Platform

// Contains reports whether p is selected.
func (s PlatformSelection) Contains(p Platform) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

// Toggle removes p when selected, otherwise appends it.
func (s PlatformSelection) Toggle(p Platform) PlatformSelection {
	if !s.Contains(p) {
		out := make(PlatformSelection, 0, len(s)+1)
		out = append(out, s...)
		return append(out, p)
	}
	out := make(PlatformSelection, 0, len(s))
	for _, q := range s {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}

// Clone returns an independent copy of s. The copy is never nil.
func (s PlatformSelection) Clone() PlatformSelection {
	out := make(PlatformSelection, len(s))
	copy(out, s)
	return out
}

// Strings returns the platform identifiers as plain strings, the persisted form.
func (s PlatformSelection) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = string(p)
	}
	return out
}

// ParsePlatformSelection converts persisted identifiers back into a selection.
// The first unknown identifier fails the whole conversion.
func ParsePlatformSelection(names []string) (PlatformSelection, error) {
	out := make(PlatformSelection, 0, len(names))
	for _, n := range names {
		p, err := ParsePlatform(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
