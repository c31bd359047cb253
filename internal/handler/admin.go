package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/portfolio/internal/auth"
	"github.com/sakif/portfolio/internal/service"
)

// AdminHandler serves login/logout and the content-editing API.
// Routes other than login and logout sit behind auth.RequireAdmin.
type AdminHandler struct {
	admin        *service.AdminService
	cookieSecure bool
	logger       *slog.Logger
}

// NewAdminHandler creates an AdminHandler. cookieSecure marks the session
// cookie Secure; turn it on whenever the site is served over HTTPS.
func NewAdminHandler(admin *service.AdminService, cookieSecure bool, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, cookieSecure: cookieSecure, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HandleLogin serves POST /admin/login.
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.admin.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSession(w, token, int(auth.SessionTTL.Seconds()), h.cookieSecure)
	writeJSON(w, http.StatusOK, loginResponse{Status: "ok", ExpiresAt: time.Now().Add(auth.SessionTTL).UTC()})
}

// HandleLogout serves POST /admin/logout. It always succeeds.
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w, h.cookieSecure)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateTimeline serves POST /api/admin/timeline.
func (h *AdminHandler) HandleCreateTimeline(w http.ResponseWriter, r *http.Request) {
	var in service.TimelineInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.admin.CreateTimelineEntry(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HandleCreateSkill serves POST /api/admin/skills.
func (h *AdminHandler) HandleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var in service.SkillInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	skill, err := h.admin.CreateSkill(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

// HandleCreateProject serves POST /api/admin/projects.
func (h *AdminHandler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	project, err := h.admin.CreateProject(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// HandleSaveContact serves PUT /api/admin/contact.
func (h *AdminHandler) HandleSaveContact(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	contact, err := h.admin.SaveContact(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// HandleDelete serves DELETE /api/admin/{table}/{id}.
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.admin.Delete(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	admin, _ := auth.AdminFromContext(r.Context())
	h.logger.Warn("admin request failed",
		slog.String("admin", admin),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeError(w, err)
}
