// Package matching ranks internships for a student by skill overlap.
package matching

import (
	"sort"

	"internship-service/internal/internship"
	"internship-service/internal/skillset"
)

// Match is an internship paired with the number of its required skills the
// student has.
type Match struct {
	Internship internship.Internship `json:"internship"`
	Score      int                   `json:"score"`
}

// Rank scores every internship by |studentSkills ∩ requiredSkills| and sorts
// by score descending. Ties keep their input order. Skills compare exactly.
func Rank(studentSkills []string, internships []internship.Internship) []Match {
	matches := make([]Match, 0, len(internships))
	if len(internships) == 0 {
		return matches
	}

	skills := skillset.NewSet(studentSkills)
	for _, in := range internships {
		matches = append(matches, Match{
			Internship: in,
			Score:      skills.Overlap(in.RequiredSkills),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
