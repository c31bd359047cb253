package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/content"
	"github.com/sakif/portfolio/internal/service"
)

// APIHandler serves the read-only JSON API, mirroring what the pages show.
type APIHandler struct {
	content *service.ContentService
	contact *service.ContactService
	logger  *slog.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(contentSvc *service.ContentService, contactSvc *service.ContactService, logger *slog.Logger) *APIHandler {
	return &APIHandler{content: contentSvc, contact: contactSvc, logger: logger}
}

// HandleTimeline serves GET /api/timeline.
func (h *APIHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	tl, err := h.content.Timeline(r.Context())
	if err != nil {
		h.fail(w, "timeline", err)
		return
	}
	writeJSON(w, http.StatusOK, timelineResponse{Timeline: tl, DefaultActive: tl.DefaultActive()})
}

type timelineResponse struct {
	content.Timeline
	DefaultActive string `json:"defaultActive"`
}

// HandleSkills serves GET /api/skills: categories in display order.
func (h *APIHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	groups, err := h.content.SkillGroups(r.Context())
	if err != nil {
		h.fail(w, "skills", err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// HandleProjects serves GET /api/projects.
func (h *APIHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.content.Projects(r.Context())
	if err != nil {
		h.fail(w, "projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type unlockRequest struct {
	Code string `json:"code"`
}

// HandleUnlock serves POST /api/contact/unlock.
//
//	blank code          → 400 validation_error (no lookup)
//	match               → 200 with the contact (access code never included)
//	no match or failure → 401 invalid_code, same body either way
func (h *APIHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, apperror.ValidationFailed("code", "code is required"))
		return
	}

	gate := h.contact.Unlock(r.Context(), req.Code)
	if !gate.Unlocked() {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_code",
			Message: content.InvalidCodeMessage,
		})
		return
	}
	writeJSON(w, http.StatusOK, gate.Contact)
}

// HandleUnlockLimited answers an API unlock attempt over the rate limit.
func (h *APIHandler) HandleUnlockLimited(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
		Error:   "rate_limited",
		Message: "Too many attempts. Try again in a minute.",
	})
}

// HandleHealth serves GET /healthz.
func (h *APIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *APIHandler) fail(w http.ResponseWriter, section string, err error) {
	h.logger.Error("api read failed", slog.String("section", section), slog.String("error", err.Error()))
	writeError(w, err)
}
