package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/portfolio/internal/content"
	"github.com/sakif/portfolio/internal/model"
)

func intPtr(v int) *int { return &v }

func sampleRepo() *fakeRepo {
	return &fakeRepo{
		timeline: []model.TimelineEntry{
			{ID: "now", Title: "Staff Engineer", Organization: "Acme", StartDate: "2023", EndDate: "Present"},
			{ID: "old", Title: "Developer", Organization: "Initech", StartDate: "2018", EndDate: "2022"},
			{ID: "bs", Title: "B.S. Computer Science", Organization: "State", StartDate: "2014", EndDate: "2018"},
		},
		skills: []model.Skill{
			{Name: "Go", Category: "Backend & APIs", Level: 5, SortOrder: intPtr(1)},
			{Name: "React", Category: "Frontend", Level: 4, SortOrder: intPtr(2)},
			{Name: "Postgres", Category: "Backend & APIs", Level: 4},
		},
		projects: []model.Project{
			{ID: "p1", Title: "Demo", MediaURL: "https://cdn.example.com/demo.MP4?x=1", Featured: true, CreatedAt: time.Now()},
			{ID: "p2", Title: "Screenshot", MediaURL: "/static/shot.png"},
			{ID: "p3", Title: "Bare"},
		},
	}
}

// =========================================================================
// READ TESTS
// =========================================================================

func TestTimeline_Partitions(t *testing.T) {
	svc := NewContentService(sampleRepo(), testLogger())

	tl, err := svc.Timeline(context.Background())
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(tl.Current) != 1 || tl.Current[0].ID != "now" {
		t.Errorf("Current = %+v, want [now]", tl.Current)
	}
	if len(tl.Work) != 1 || tl.Work[0].ID != "old" {
		t.Errorf("Work = %+v, want [old]", tl.Work)
	}
	if len(tl.Education) != 1 || tl.Education[0].ID != "bs" {
		t.Errorf("Education = %+v, want [bs]", tl.Education)
	}
}

func TestSkillGroups_GroupsAndOrders(t *testing.T) {
	svc := NewContentService(sampleRepo(), testLogger())

	groups, err := svc.SkillGroups(context.Background())
	if err != nil {
		t.Fatalf("SkillGroups() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Category != "Frontend" || groups[1].Category != "Backend & APIs" {
		t.Errorf("categories = %q, %q; want Frontend first", groups[0].Category, groups[1].Category)
	}
	// mean(5, 4) = 4.5 rounds up.
	if groups[1].Level != 5 {
		t.Errorf("Backend level = %d, want 5", groups[1].Level)
	}
}

func TestProjects_ResolvesMedia(t *testing.T) {
	svc := NewContentService(sampleRepo(), testLogger())

	views, err := svc.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects() error = %v", err)
	}
	want := []content.MediaKind{content.MediaVideo, content.MediaImage, content.MediaNone}
	for i, v := range views {
		if v.Media != want[i] {
			t.Errorf("project %s media = %q, want %q", v.ID, v.Media, want[i])
		}
	}
}

func TestReads_WrapErrors(t *testing.T) {
	repo := &fakeRepo{skillsErr: errBackendDown}
	svc := NewContentService(repo, testLogger())

	_, err := svc.SkillGroups(context.Background())
	if !errors.Is(err, errBackendDown) {
		t.Errorf("error = %v, want wrapped errBackendDown", err)
	}
}

func TestReads_EmptyIsNotAnError(t *testing.T) {
	svc := NewContentService(&fakeRepo{}, testLogger())

	groups, err := svc.SkillGroups(context.Background())
	if err != nil {
		t.Fatalf("SkillGroups() error = %v", err)
	}
	if groups == nil || len(groups) != 0 {
		t.Errorf("groups = %#v, want empty non-nil slice", groups)
	}

	views, err := svc.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects() error = %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("projects = %#v, want empty non-nil slice", views)
	}
}

// =========================================================================
// HOME PAGE TESTS
// =========================================================================

func TestHome_AllSectionsLoad(t *testing.T) {
	svc := NewContentService(sampleRepo(), testLogger())

	page := svc.Home(context.Background())
	if page.Timeline.Failed() || page.Skills.Failed() || page.Projects.Failed() {
		t.Fatalf("unexpected failure: %+v", page)
	}
	if page.Timeline.Data.Len() != 3 {
		t.Errorf("timeline entries = %d, want 3", page.Timeline.Data.Len())
	}
	if len(page.Projects.Data) != 3 {
		t.Errorf("projects = %d, want 3", len(page.Projects.Data))
	}
}

func TestHome_OneFailureDegradesOnlyItsSection(t *testing.T) {
	repo := sampleRepo()
	repo.projectsErr = errBackendDown
	svc := NewContentService(repo, testLogger())

	page := svc.Home(context.Background())
	if !page.Projects.Failed() {
		t.Error("Projects section should have failed")
	}
	if page.Timeline.Failed() {
		t.Errorf("Timeline failed: %v", page.Timeline.Err)
	}
	if page.Skills.Failed() {
		t.Errorf("Skills failed: %v", page.Skills.Err)
	}
	if len(page.Skills.Data) != 2 {
		t.Errorf("skills groups = %d, want 2", len(page.Skills.Data))
	}
}
