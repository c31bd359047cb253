package repository

import (
	"context"

	"github.com/sakif/portfolio/internal/model"
)

type Table string

const (
	TableTimeline Table = "timeline"
	TableSkills   Table = "skills"
	TableProjects Table = "projects"
	TableContact  Table = "private_contact"
)

func ParseTable(s string) (Table, bool) {
	switch t := Table(s); t {
	case TableTimeline, TableSkills, TableProjects, TableContact:
		return t, true
	}
	return "", false
}

type TimelineRepository interface {
	ListTimeline(ctx context.Context) ([]model.TimelineEntry, error)
}

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]model.Skill, error)
}

type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
}

type ContactRepository interface {
	FindContactByCode(ctx context.Context, code string) (*model.PrivateContact, error)
}

// ContentReader is everything the public pages read.
type ContentReader interface {
	TimelineRepository
	SkillRepository
	ProjectRepository
	ContactRepository
}

type ContentWriter interface {
	CreateTimelineEntry(ctx context.Context, entry *model.TimelineEntry) error
	CreateSkill(ctx context.Context, skill *model.Skill) error
	CreateProject(ctx context.Context, project *model.Project) error
	SaveContact(ctx context.Context, contact *model.PrivateContact) error
	Delete(ctx context.Context, table Table, id string) error
}

type Store interface {
	ContentReader
	ContentWriter
	Close() error
}
