// Package memory is a repository.Store held entirely in process memory.
//
// It backs the "file" backend: at startup the content file is applied to an
// empty Store and the site serves from it. Reads return copies, sorted the same
// way the SQL backends sort, so callers cannot tell the difference.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	seq      int
	timeline []timelineItem
	skills   []model.Skill
	projects []model.Project
	contacts []model.PrivateContact
}

// timelineItem remembers insertion order, which stands in for created_at.
type timelineItem struct {
	entry model.TimelineEntry
	seq   int
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func cloneList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return slices.Clone(items)
}

// ListTimeline returns entries newest start date first, later inserts first on ties.
func (s *Store) ListTimeline(_ context.Context) ([]model.TimelineEntry, error) {
	s.mu.RLock()
	items := slices.Clone(s.timeline)
	s.mu.RUnlock()

	slices.SortStableFunc(items, func(a, b timelineItem) int {
		if c := cmp.Compare(b.entry.StartDate, a.entry.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	entries := make([]model.TimelineEntry, 0, len(items))
	for _, it := range items {
		e := it.entry
		e.Bullets = cloneList(e.Bullets)
		entries = append(entries, e)
	}
	return entries, nil
}

// ListSkills returns skills by sort order (unset last), then name.
func (s *Store) ListSkills(_ context.Context) ([]model.Skill, error) {
	s.mu.RLock()
	skills := slices.Clone(s.skills)
	s.mu.RUnlock()

	if skills == nil {
		skills = []model.Skill{}
	}
	slices.SortStableFunc(skills, func(a, b model.Skill) int {
		switch {
		case a.SortOrder == nil && b.SortOrder != nil:
			return 1
		case a.SortOrder != nil && b.SortOrder == nil:
			return -1
		case a.SortOrder != nil && b.SortOrder != nil:
			if c := cmp.Compare(*a.SortOrder, *b.SortOrder); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return skills, nil
}

// ListProjects returns featured projects first, newest first within each group.
func (s *Store) ListProjects(_ context.Context) ([]model.Project, error) {
	s.mu.RLock()
	projects := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		p.Technologies = cloneList(p.Technologies)
		p.Bullets = cloneList(p.Bullets)
		projects = append(projects, p)
	}
	s.mu.RUnlock()

	slices.SortStableFunc(projects, func(a, b model.Project) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return projects, nil
}

// FindContactByCode returns a copy of the contact whose access code equals code.
func (s *Store) FindContactByCode(_ context.Context, code string) (*model.PrivateContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contacts {
		if c.AccessCode == code {
			found := c
			return &found, nil
		}
	}
	return nil, apperror.NoMatch("private contact")
}

// CreateTimelineEntry appends an entry. An empty ID is filled with a new xid.
func (s *Store) CreateTimelineEntry(_ context.Context, entry *model.TimelineEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New().String()
	}
	if slices.ContainsFunc(s.timeline, func(it timelineItem) bool { return it.entry.ID == entry.ID }) {
		return apperror.Conflict("timeline entry", entry.ID)
	}

	s.seq++
	e := *entry
	e.Bullets = cloneList(e.Bullets)
	s.timeline = append(s.timeline, timelineItem{entry: e, seq: s.seq})
	return nil
}

// CreateSkill appends a skill. An empty ID is filled with a new xid.
func (s *Store) CreateSkill(_ context.Context, skill *model.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if skill.ID == "" {
		skill.ID = xid.New().String()
	}
	if slices.ContainsFunc(s.skills, func(k model.Skill) bool { return k.ID == skill.ID }) {
		return apperror.Conflict("skill", skill.ID)
	}

	k := *skill
	if k.SortOrder != nil {
		order := *k.SortOrder
		k.SortOrder = &order
	}
	s.skills = append(s.skills, k)
	return nil
}

// CreateProject appends a project. Empty ID and zero CreatedAt are filled in.
func (s *Store) CreateProject(_ context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if project.ID == "" {
		project.ID = xid.New().String()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	if slices.ContainsFunc(s.projects, func(p model.Project) bool { return p.ID == project.ID }) {
		return apperror.Conflict("project", project.ID)
	}

	p := *project
	p.Technologies = cloneList(p.Technologies)
	p.Bullets = cloneList(p.Bullets)
	s.projects = append(s.projects, p)
	return nil
}

// SaveContact inserts or replaces the contact with the same ID. Access codes
// stay unique across rows.
func (s *Store) SaveContact(_ context.Context, contact *model.PrivateContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contact.ID == "" {
		contact.ID = xid.New().String()
	}
	for _, c := range s.contacts {
		if c.AccessCode == contact.AccessCode && c.ID != contact.ID {
			return apperror.Conflict("private contact", contact.ID)
		}
	}

	now := time.Now()
	contact.UpdatedAt = now

	i := slices.IndexFunc(s.contacts, func(c model.PrivateContact) bool { return c.ID == contact.ID })
	if i >= 0 {
		contact.CreatedAt = s.contacts[i].CreatedAt
		s.contacts[i] = *contact
		return nil
	}

	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	s.contacts = append(s.contacts, *contact)
	return nil
}

// Delete removes one row by ID.
func (s *Store) Delete(_ context.Context, table repository.Table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed bool
	switch table {
	case repository.TableTimeline:
		s.timeline, removed = deleteFunc(s.timeline, func(it timelineItem) bool { return it.entry.ID == id })
	case repository.TableSkills:
		s.skills, removed = deleteFunc(s.skills, func(k model.Skill) bool { return k.ID == id })
	case repository.TableProjects:
		s.projects, removed = deleteFunc(s.projects, func(p model.Project) bool { return p.ID == id })
	case repository.TableContact:
		s.contacts, removed = deleteFunc(s.contacts, func(c model.PrivateContact) bool { return c.ID == id })
	default:
		return apperror.ValidationFailed("table", fmt.Sprintf("unknown table %q", table))
	}

	if !removed {
		return apperror.NotFound(string(table), id)
	}
	return nil
}

func deleteFunc[T any](items []T, match func(T) bool) ([]T, bool) {
	n := len(items)
	items = slices.DeleteFunc(items, match)
	return items, len(items) != n
}
