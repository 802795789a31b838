// Package schema lists the service's tables in dependency order.
package schema

import (
	"internship-service/internal/application"
	"internship-service/internal/auth"
	"internship-service/internal/db"
	"internship-service/internal/internship"
	"internship-service/internal/profile"
)

// Tables returns every table with its cascading foreign keys. Deleting a
// profile removes its internships, their questions and all related applications.
func Tables() []db.Table {
	return []db.Table{
		{Model: (*profile.Profile)(nil)},
		{
			Model:       (*auth.RefreshToken)(nil),
			ForeignKeys: []string{`("profile_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`},
		},
		{
			Model:       (*internship.Internship)(nil),
			ForeignKeys: []string{`("employer_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`},
		},
		{
			Model:       (*internship.TechnicalQuestion)(nil),
			ForeignKeys: []string{`("internship_id") REFERENCES "internships" ("id") ON DELETE CASCADE`},
		},
		{
			Model: (*application.Application)(nil),
			ForeignKeys: []string{
				`("student_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`,
				`("internship_id") REFERENCES "internships" ("id") ON DELETE CASCADE`,
			},
		},
	}
}

// TableNames lists the tables in truncation order for tests.
func TableNames() []string {
	return []string{"applications", "technical_questions", "internships", "refresh_tokens", "profiles"}
}
