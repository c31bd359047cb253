package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio/internal/handler"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
	"github.com/sakif/portfolio/internal/repository/memory"
	"github.com/sakif/portfolio/internal/service"
	"github.com/sakif/portfolio/web"
)

var errDown = errors.New("dial tcp: connection refused")

// brokenReader wraps a store and fails the reads named in its fields.
type brokenReader struct {
	repository.ContentReader
	timeline, skills, projects, contact bool
}

func (b brokenReader) ListTimeline(ctx context.Context) ([]model.TimelineEntry, error) {
	if b.timeline {
		return nil, errDown
	}
	return b.ContentReader.ListTimeline(ctx)
}

func (b brokenReader) ListSkills(ctx context.Context) ([]model.Skill, error) {
	if b.skills {
		return nil, errDown
	}
	return b.ContentReader.ListSkills(ctx)
}

func (b brokenReader) ListProjects(ctx context.Context) ([]model.Project, error) {
	if b.projects {
		return nil, errDown
	}
	return b.ContentReader.ListProjects(ctx)
}

func (b brokenReader) FindContactByCode(ctx context.Context, code string) (*model.PrivateContact, error) {
	if b.contact {
		return nil, errDown
	}
	return b.ContentReader.FindContactByCode(ctx, code)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

// seededStore returns a memory store with a little of everything.
func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()

	for _, e := range []model.TimelineEntry{
		{ID: "acme", Title: "Staff Engineer", Organization: "Acme", StartDate: "2022", EndDate: "Present", Summary: "Built **things**."},
		{ID: "initech", Title: "Developer", Organization: "Initech", StartDate: "2018", EndDate: "2022"},
		{ID: "state", Title: "B.S. Computer Science", Organization: "State University", StartDate: "2014", EndDate: "2018"},
	} {
		e := e
		require.NoError(t, s.CreateTimelineEntry(ctx, &e))
	}
	for _, k := range []model.Skill{
		{Name: "Go", Category: "Backend & APIs", Level: 5, SortOrder: intPtr(1)},
		{Name: "React", Category: "Frontend", Level: 4, SortOrder: intPtr(2)},
	} {
		k := k
		require.NoError(t, s.CreateSkill(ctx, &k))
	}
	require.NoError(t, s.CreateProject(ctx, &model.Project{
		ID: "site", Title: "Portfolio", Description: "This site.",
		MediaURL: "https://youtu.be/abc", Featured: true, CreatedAt: time.Now(),
	}))
	require.NoError(t, s.SaveContact(ctx, &model.PrivateContact{
		AccessCode: "2468", Email: "me@example.com", Phone: "555-0100",
	}))
	return s
}

// newPageHandler builds a PageHandler over reader with the embedded templates.
func newPageHandler(t *testing.T, reader repository.ContentReader, staticDir string) *handler.PageHandler {
	t.Helper()
	logger := testLogger()
	h, err := handler.NewPageHandler(
		service.NewContentService(reader, logger),
		service.NewContactService(reader, logger),
		handler.Site{Name: "Jane Doe", Tagline: "Engineer", About: "I *like* Go."},
		staticDir,
		web.Templates,
		logger,
	)
	require.NoError(t, err)
	return h
}

func newAPIHandler(reader repository.ContentReader) *handler.APIHandler {
	logger := testLogger()
	return handler.NewAPIHandler(
		service.NewContentService(reader, logger),
		service.NewContactService(reader, logger),
		logger,
	)
}

// writeResume puts a fake resume.pdf into a temp dir and returns the dir.
func writeResume(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, handler.ResumeFile), []byte("%PDF-1.4 fake"), 0o644))
	return dir
}
