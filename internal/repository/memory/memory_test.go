package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

func intPtr(v int) *int { return &v }

func TestStore_EmptyListsAreNonNil(t *testing.T) {
	s := New()
	ctx := context.Background()

	timeline, err := s.ListTimeline(ctx)
	require.NoError(t, err)
	assert.NotNil(t, timeline)

	skills, err := s.ListSkills(ctx)
	require.NoError(t, err)
	assert.NotNil(t, skills)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, projects)
}

func TestStore_TimelineOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, e := range []model.TimelineEntry{
		{Title: "old", StartDate: "2016-01"},
		{Title: "new", StartDate: "2024-01"},
		{Title: "tie-first", StartDate: "2020-01"},
		{Title: "tie-second", StartDate: "2020-01"},
	} {
		e := e
		require.NoError(t, s.CreateTimelineEntry(ctx, &e))
	}

	entries, err := s.ListTimeline(ctx)
	require.NoError(t, err)

	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
		assert.NotNil(t, e.Bullets)
	}
	assert.Equal(t, []string{"new", "tie-second", "tie-first", "old"}, titles)
}

func TestStore_SkillsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, k := range []model.Skill{
		{Name: "Zustand", Level: 3},
		{Name: "React", Level: 5, SortOrder: intPtr(2)},
		{Name: "Angular", Level: 2},
		{Name: "Go", Level: 4, SortOrder: intPtr(1)},
		{Name: "CSS", Level: 4, SortOrder: intPtr(2)},
	} {
		k := k
		require.NoError(t, s.CreateSkill(ctx, &k))
	}

	skills, err := s.ListSkills(ctx)
	require.NoError(t, err)

	var names []string
	for _, k := range skills {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"Go", "CSS", "React", "Angular", "Zustand"}, names)
}

func TestStore_ProjectsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateProject(ctx, &model.Project{Title: "old plain", CreatedAt: base}))
	require.NoError(t, s.CreateProject(ctx, &model.Project{Title: "new plain", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.CreateProject(ctx, &model.Project{Title: "old featured", Featured: true, CreatedAt: base}))

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)

	var titles []string
	for _, p := range projects {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"old featured", "new plain", "old plain"}, titles)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateProject(ctx, &model.Project{ID: "p", Technologies: []string{"Go"}}))

	first, err := s.ListProjects(ctx)
	require.NoError(t, err)
	first[0].Technologies[0] = "changed"

	second, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Go", second[0].Technologies[0])
}

func TestStore_DuplicateIDConflicts(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateSkill(ctx, &model.Skill{ID: "s1", Name: "Go", Level: 5}))
	err := s.CreateSkill(ctx, &model.Skill{ID: "s1", Name: "Rust", Level: 3})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestStore_Contact(t *testing.T) {
	s := New()
	ctx := context.Background()

	c := &model.PrivateContact{AccessCode: "2468", Email: "me@example.com"}
	require.NoError(t, s.SaveContact(ctx, c))
	created := c.CreatedAt

	found, err := s.FindContactByCode(ctx, "2468")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", found.Email)

	_, err = s.FindContactByCode(ctx, "0000")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// Saving again with the same ID replaces the row and keeps CreatedAt.
	require.NoError(t, s.SaveContact(ctx, &model.PrivateContact{ID: c.ID, AccessCode: "1357", Phone: "555"}))
	_, err = s.FindContactByCode(ctx, "2468")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	found, err = s.FindContactByCode(ctx, "1357")
	require.NoError(t, err)
	assert.Equal(t, "555", found.Phone)
	assert.Equal(t, created, found.CreatedAt)

	err = s.SaveContact(ctx, &model.PrivateContact{AccessCode: "1357"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestStore_Delete(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateTimelineEntry(ctx, &model.TimelineEntry{ID: "t1", Title: "x"}))

	require.NoError(t, s.Delete(ctx, repository.TableTimeline, "t1"))
	assert.ErrorIs(t, s.Delete(ctx, repository.TableTimeline, "t1"), apperror.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, repository.Table("users"), "t1"), apperror.ErrValidation)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.CreateSkill(ctx, &model.Skill{Name: "Go", Level: 3}))
		}()
		go func() {
			defer wg.Done()
			_, err := s.ListSkills(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	skills, err := s.ListSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 20)
}
