// Package skillset normalizes skill lists at write boundaries.
//
// Skills are compared as exact, case-sensitive strings. Normalization only trims
// surrounding whitespace, drops empty entries and removes duplicates, so "Go" and
// "go" stay distinct skills.
package skillset

import "strings"

// Normalize returns a trimmed, de-duplicated copy of skills in first-seen order.
// The result is never nil.
func Normalize(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Set is a skill membership set.
type Set map[string]struct{}

func NewSet(skills []string) Set {
	set := make(Set, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// Overlap counts distinct members of skills present in the set.
func (s Set) Overlap(skills []string) int {
	if len(s) == 0 || len(skills) == 0 {
		return 0
	}
	n := 0
	counted := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		if _, ok := s[skill]; !ok {
			continue
		}
		if _, dup := counted[skill]; dup {
			continue
		}
		counted[skill] = struct{}{}
		n++
	}
	return n
}
