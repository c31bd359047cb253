// Package service contains the business logic of the site.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, renders pages and JSON
//	Service (business layer) → groups, classifies, gates, validates
//	Repository (data layer)  → reads/writes one of the storage backends
//
// Services take repository interfaces, never a concrete backend. The same
// ContentService runs against SQLite, Postgres, PostgREST or the in-memory
// file store, and tests hand it a fake.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/portfolio/internal/content"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

// ContentService serves the read side of the site.
type ContentService struct {
	repo   repository.ContentReader
	logger *slog.Logger
}

// NewContentService creates a ContentService.
func NewContentService(repo repository.ContentReader, logger *slog.Logger) *ContentService {
	return &ContentService{repo: repo, logger: logger}
}

// Timeline reads every entry and partitions it into current, work and
// education, keeping the repository's order inside each group.
func (s *ContentService) Timeline(ctx context.Context) (content.Timeline, error) {
	entries, err := s.repo.ListTimeline(ctx)
	if err != nil {
		return content.Timeline{}, fmt.Errorf("service/content: timeline: %w", err)
	}
	return content.PartitionTimeline(entries), nil
}

// SkillGroups reads every skill and groups them by category.
func (s *ContentService) SkillGroups(ctx context.Context) ([]content.SkillGroup, error) {
	skills, err := s.repo.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/content: skills: %w", err)
	}
	return content.GroupSkills(skills), nil
}

// ProjectView is a project with its media kind resolved for rendering.
type ProjectView struct {
	model.Project
	Media content.MediaKind `json:"media"`
}

// Projects reads every project in repository order (featured first, newest first).
func (s *ContentService) Projects(ctx context.Context) ([]ProjectView, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/content: projects: %w", err)
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, ProjectView{Project: p, Media: content.ProjectMedia(p)})
	}
	return views, nil
}

// Section is the outcome of loading one part of a page: either data or the
// error that stopped it. A failed section never fails the page.
type Section[T any] struct {
	Data T
	Err  error
}

// Failed reports whether the section could not be loaded.
func (s Section[T]) Failed() bool {
	return s.Err != nil
}

// HomePage is everything the home page shows.
type HomePage struct {
	Timeline Section[content.Timeline]
	Skills   Section[[]content.SkillGroup]
	Projects Section[[]ProjectView]
}

// Home loads the three home page sections concurrently.
//
// Each goroutine stores its own error in its Section and returns nil, so one
// failing read does not cancel the others through the errgroup context.
func (s *ContentService) Home(ctx context.Context) HomePage {
	var page HomePage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page.Timeline.Data, page.Timeline.Err = s.Timeline(gctx)
		return nil
	})
	g.Go(func() error {
		page.Skills.Data, page.Skills.Err = s.SkillGroups(gctx)
		return nil
	})
	g.Go(func() error {
		page.Projects.Data, page.Projects.Err = s.Projects(gctx)
		return nil
	})
	_ = g.Wait()

	s.logFailed("timeline", page.Timeline.Err)
	s.logFailed("skills", page.Skills.Err)
	s.logFailed("projects", page.Projects.Err)
	return page
}

func (s *ContentService) logFailed(section string, err error) {
	if err != nil {
		s.logger.Error("section failed to load",
			slog.String("section", section),
			slog.String("error", err.Error()),
		)
	}
}
