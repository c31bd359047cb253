// Package content holds the little logic the site has on top of its rows:
// grouping skills, sorting timeline entries into sections, guessing how a project's
// media should be shown, and the locked/unlocked contact gate.
//
// Everything here is pure: no I/O and no mutable globals.
// Services fetch rows through the repository interfaces and hand them to these
// functions; handlers render what comes back.
package content

import (
	"math"
	"slices"
	"strings"

	"github.com/sakif/portfolio/internal/model"
)

// DefaultCategory is used for skills whose category column is blank.
const DefaultCategory = "General"

// CategoryOrder is the preferred display order of skill categories.
// Categories not listed here are shown after all of these, alphabetically.
var CategoryOrder = []string{
	"Frontend",
	"Backend & APIs",
	"DevOps & CI/CD",
	"Testing & Automation",
	"Data & Analytics",
	"AI & ML",
	"Programming Languages",
	"Other Tools",
	DefaultCategory,
}

// SkillGroup is one category of skills plus the level shown for the whole category.
type SkillGroup struct {
	Category string        `json:"category"`
	Level    int           `json:"level"`
	Skills   []model.Skill `json:"skills"`
}

// GroupSkills partitions skills by category and orders the categories.
//
// Skills keep their input order inside a group, so a list already sorted by
// sort order and name stays sorted. The group level is the mean of its members'
// levels rounded half up: [5,4] → 5, [3,4,4] → 4.
func GroupSkills(skills []model.Skill) []SkillGroup {
	groups := make([]SkillGroup, 0)
	index := make(map[string]int)

	for _, s := range skills {
		category := strings.TrimSpace(s.Category)
		if category == "" {
			category = DefaultCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{Category: category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}

	for i := range groups {
		groups[i].Level = averageLevel(groups[i].Skills)
	}

	slices.SortStableFunc(groups, func(a, b SkillGroup) int {
		return compareCategories(a.Category, b.Category)
	})

	return groups
}

// averageLevel is round-half-up of the arithmetic mean; 0 for an empty slice.
func averageLevel(skills []model.Skill) int {
	if len(skills) == 0 {
		return 0
	}
	sum := 0
	for _, s := range skills {
		sum += s.Level
	}
	return int(math.Floor(float64(sum)/float64(len(skills)) + 0.5))
}

func compareCategories(a, b string) int {
	ai := slices.Index(CategoryOrder, a)
	bi := slices.Index(CategoryOrder, b)
	switch {
	case ai == -1 && bi == -1:
		return strings.Compare(a, b)
	case ai == -1:
		return 1
	case bi == -1:
		return -1
	}
	return ai - bi
}
