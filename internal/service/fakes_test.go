package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

// =========================================================================
// FAKE REPOSITORY
// =========================================================================
//
// fakeRepo implements repository.Store in memory. Each read can be made to
// fail through its *Err field, which is how the tests simulate a backend that
// is down for one table but not the others.

type fakeRepo struct {
	mu sync.Mutex

	timeline []model.TimelineEntry
	skills   []model.Skill
	projects []model.Project
	contacts []model.PrivateContact

	timelineErr error
	skillsErr   error
	projectsErr error
	contactErr  error
	writeErr    error

	lookups int
	deleted []string
}

var _ repository.Store = (*fakeRepo)(nil)

var errBackendDown = errors.New("connection refused")

func (f *fakeRepo) ListTimeline(context.Context) ([]model.TimelineEntry, error) {
	if f.timelineErr != nil {
		return nil, f.timelineErr
	}
	return append([]model.TimelineEntry{}, f.timeline...), nil
}

func (f *fakeRepo) ListSkills(context.Context) ([]model.Skill, error) {
	if f.skillsErr != nil {
		return nil, f.skillsErr
	}
	return append([]model.Skill{}, f.skills...), nil
}

func (f *fakeRepo) ListProjects(context.Context) ([]model.Project, error) {
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return append([]model.Project{}, f.projects...), nil
}

func (f *fakeRepo) FindContactByCode(_ context.Context, code string) (*model.PrivateContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	if f.contactErr != nil {
		return nil, f.contactErr
	}
	for _, c := range f.contacts {
		if c.AccessCode == code {
			found := c
			return &found, nil
		}
	}
	return nil, apperror.NoMatch("private contact")
}

func (f *fakeRepo) CreateTimelineEntry(_ context.Context, e *model.TimelineEntry) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if e.ID == "" {
		e.ID = "t-fake"
	}
	f.timeline = append(f.timeline, *e)
	return nil
}

func (f *fakeRepo) CreateSkill(_ context.Context, s *model.Skill) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if s.ID == "" {
		s.ID = "s-fake"
	}
	f.skills = append(f.skills, *s)
	return nil
}

func (f *fakeRepo) CreateProject(_ context.Context, p *model.Project) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if p.ID == "" {
		p.ID = "p-fake"
	}
	f.projects = append(f.projects, *p)
	return nil
}

func (f *fakeRepo) SaveContact(_ context.Context, c *model.PrivateContact) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if c.ID == "" {
		c.ID = "c-fake"
	}
	f.contacts = append(f.contacts, *c)
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, table repository.Table, id string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, string(table)+"/"+id)
	return nil
}

func (f *fakeRepo) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
