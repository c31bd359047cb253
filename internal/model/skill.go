package model

// Skill levels are rated on a 1–5 scale and rendered as five dots.
const (
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// Skill is one row of the skills table.
//
// SortOrder is a pointer because the column is nullable: nil means "no explicit
// position", and such rows sort after every row that has one.
type Skill struct {
	ID        string `json:"id"        db:"id"`
	Category  string `json:"category"  db:"category"`
	Name      string `json:"name"      db:"name"`
	Level     int    `json:"level"     db:"level"`
	SortOrder *int   `json:"sortOrder" db:"sort_order"`
}
