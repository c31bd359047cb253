package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/portfolio/internal/repository/memory"
)

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func postForm(h http.HandlerFunc, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHome_RendersAllSections(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	rr := get(h.HandleHome, "/")
	body := rr.Body.String()

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "<em>like</em>", "about text is rendered as markdown")
	assert.Contains(t, body, "<strong>things</strong>", "timeline summary is rendered as markdown")
	assert.Contains(t, body, "Staff Engineer")
	assert.Contains(t, body, "Backend &amp; APIs")
	assert.Contains(t, body, "Watch video", "youtube media renders as an external link")
	assert.Contains(t, body, `action="/contact/unlock"`)
	assert.NotContains(t, body, "me@example.com")
	assert.NotContains(t, body, "/resume", "no resume link without a resume file")
}

func TestHome_DefaultActiveEntryIsCurrent(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	body := get(h.HandleHome, "/").Body.String()
	assert.Contains(t, body, `class="timeline-entry active" id="entry-acme"`)

	body = get(h.HandleHome, "/?entry=state").Body.String()
	assert.Contains(t, body, `class="timeline-entry active" id="entry-state"`)
	assert.Contains(t, body, `class="timeline-entry" id="entry-acme"`)
}

func TestHome_PanelQueryOpensOnePanel(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	body := get(h.HandleHome, "/?panel=skills").Body.String()
	assert.Contains(t, body, "React")
	assert.NotContains(t, body, "Staff Engineer", "timeline is hidden while another panel is open")

	body = get(h.HandleHome, "/?panel=bogus").Body.String()
	assert.Contains(t, body, "Staff Engineer", "unknown panel falls back to the full page")
}

func TestHome_FailedSectionDegradesAlone(t *testing.T) {
	h := newPageHandler(t, brokenReader{ContentReader: seededStore(t), projects: true}, "")

	rr := get(h.HandleHome, "/")
	body := rr.Body.String()

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, "Could not load projects.")
	assert.Contains(t, body, "Staff Engineer")
	assert.Contains(t, body, "React")
	assert.NotContains(t, body, "connection refused", "driver errors never reach the page")
}

func TestPages_EmptyContent(t *testing.T) {
	h := newPageHandler(t, memory.New(), "")

	for name, fn := range map[string]http.HandlerFunc{
		"skills":    h.HandleSkills,
		"education": h.HandleEducation,
		"projects":  h.HandleProjects,
	} {
		t.Run(name, func(t *testing.T) {
			rr := get(fn, "/"+name)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "No content found.")
		})
	}
}

func TestPages_FetchFailure(t *testing.T) {
	reader := brokenReader{ContentReader: memory.New(), timeline: true, skills: true, projects: true}
	h := newPageHandler(t, reader, "")

	assert.Contains(t, get(h.HandleSkills, "/skills").Body.String(), "Could not load skills.")
	assert.Contains(t, get(h.HandleEducation, "/education").Body.String(), "Could not load the timeline.")
	assert.Contains(t, get(h.HandleProjects, "/projects").Body.String(), "Could not load projects.")
}

func TestEducationPage_GroupsTimeline(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	body := get(h.HandleEducation, "/education").Body.String()
	current := strings.Index(body, "Staff Engineer")
	past := strings.Index(body, "Developer")
	school := strings.Index(body, "B.S. Computer Science")

	assert.True(t, current >= 0 && past > current && school > past,
		"expected current, then past work, then education")
	assert.Contains(t, body, `aria-current="page"`)
}

func TestUnlock_HTMXFragment(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	rr := postForm(h.HandleUnlock, "/contact/unlock", url.Values{"code": {"2468"}}, true)
	body := rr.Body.String()

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), `<section id="contact-panel"`), "fragment only")
	assert.Contains(t, body, "me@example.com")
	assert.Contains(t, body, "555-0100")
	assert.NotContains(t, body, "<form")
}

func TestUnlock_WrongCodeAndFailureRenderTheSame(t *testing.T) {
	wrong := postForm(newPageHandler(t, seededStore(t), "").HandleUnlock,
		"/contact/unlock", url.Values{"code": {"0000"}}, true)
	broken := postForm(newPageHandler(t, brokenReader{ContentReader: seededStore(t), contact: true}, "").HandleUnlock,
		"/contact/unlock", url.Values{"code": {"2468"}}, true)

	assert.Equal(t, http.StatusOK, wrong.Code)
	assert.Contains(t, wrong.Body.String(), "Invalid PIN.")
	assert.Equal(t, wrong.Body.String(), broken.Body.String())
}

func TestUnlock_BlankCodeShowsNoMessage(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	body := postForm(h.HandleUnlock, "/contact/unlock", url.Values{"code": {"   "}}, true).Body.String()
	assert.Contains(t, body, "<form")
	assert.NotContains(t, body, "Invalid PIN.")
}

func TestUnlock_PlainFormPostRendersFullPage(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	body := postForm(h.HandleUnlock, "/contact/unlock", url.Values{"code": {"2468"}}, false).Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "me@example.com")
}

func TestUnlockLimited(t *testing.T) {
	h := newPageHandler(t, seededStore(t), "")

	rr := postForm(h.HandleUnlockLimited, "/contact/unlock", url.Values{"code": {"2468"}}, true)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "Too many attempts")
	assert.NotContains(t, rr.Body.String(), "me@example.com")
}

func TestResume(t *testing.T) {
	t.Run("served as attachment", func(t *testing.T) {
		h := newPageHandler(t, memory.New(), writeResume(t))

		rr := get(h.HandleResume, "/resume")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
		assert.Equal(t, "%PDF-1.4 fake", rr.Body.String())

		assert.Contains(t, get(h.HandleHome, "/").Body.String(), `href="/resume"`)
	})

	t.Run("missing file", func(t *testing.T) {
		h := newPageHandler(t, memory.New(), t.TempDir())
		assert.Equal(t, http.StatusNotFound, get(h.HandleResume, "/resume").Code)
	})

	t.Run("no static dir", func(t *testing.T) {
		h := newPageHandler(t, memory.New(), "")
		assert.Equal(t, http.StatusNotFound, get(h.HandleResume, "/resume").Code)
	})
}
