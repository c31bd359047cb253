package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/auth"
	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

// Admin request payloads. The validate tags are checked by go-playground/validator
// before anything reaches the store.

type TimelineInput struct {
	ID           string   `json:"id"           validate:"omitempty,max=64"`
	Title        string   `json:"title"        validate:"required,max=200"`
	Organization string   `json:"organization" validate:"max=200"`
	StartDate    string   `json:"startDate"    validate:"max=32"`
	EndDate      string   `json:"endDate"      validate:"max=32"`
	Current      bool     `json:"current"`
	Summary      string   `json:"summary"      validate:"max=5000"`
	Bullets      []string `json:"bullets"      validate:"max=50,dive,max=500"`
	Kind         string   `json:"kind"         validate:"omitempty,oneof=work education"`
}

type SkillInput struct {
	ID        string `json:"id"        validate:"omitempty,max=64"`
	Category  string `json:"category"  validate:"max=100"`
	Name      string `json:"name"      validate:"required,max=100"`
	Level     int    `json:"level"     validate:"min=1,max=5"`
	SortOrder *int   `json:"sortOrder" validate:"omitempty,min=0"`
}

type ProjectInput struct {
	ID           string   `json:"id"           validate:"omitempty,max=64"`
	Title        string   `json:"title"        validate:"required,max=200"`
	Description  string   `json:"description"  validate:"max=10000"`
	Technologies []string `json:"technologies" validate:"max=50,dive,max=100"`
	Bullets      []string `json:"bullets"      validate:"max=50,dive,max=500"`
	MediaURL     string   `json:"mediaUrl"     validate:"omitempty,uri,max=2048"`
	MediaType    string   `json:"mediaType"    validate:"omitempty,oneof=image video external_video"`
	WebsiteURL   string   `json:"websiteUrl"   validate:"omitempty,url,max=2048"`
	Category     string   `json:"category"     validate:"max=100"`
	Featured     bool     `json:"featured"`
}

type ContactInput struct {
	ID          string `json:"id"          validate:"omitempty,max=64"`
	AccessCode  string `json:"accessCode"  validate:"required,min=4,max=64"`
	Phone       string `json:"phone"       validate:"max=50"`
	Email       string `json:"email"       validate:"omitempty,email"`
	LinkedInURL string `json:"linkedinUrl" validate:"omitempty,url"`
	Location    string `json:"location"    validate:"max=200"`
}

// AdminService validates and applies admin edits, and issues admin sessions.
type AdminService struct {
	store     repository.ContentWriter
	creds     auth.Credentials
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAdminService creates an AdminService. tokens may be nil when no JWT
// secret is configured; Login then reports admin access as disabled.
func NewAdminService(
	store repository.ContentWriter,
	creds auth.Credentials,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		store:     store,
		creds:     creds,
		passwords: passwords,
		tokens:    tokens,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Enabled reports whether logins can succeed at all.
func (s *AdminService) Enabled() bool {
	return s.creds.Enabled() && s.tokens != nil
}

// Login checks credentials and returns a signed session token.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	if !s.Enabled() {
		return "", apperror.Forbidden("admin access is disabled")
	}

	if err := s.creds.Check(s.passwords, strings.TrimSpace(username), password); err != nil {
		s.logger.WarnContext(ctx, "admin login failed", slog.String("username", username))
		return "", apperror.Unauthorized("invalid username or password")
	}

	token, err := s.tokens.Generate(s.creds.Username)
	if err != nil {
		return "", fmt.Errorf("service/admin: issuing session: %w", err)
	}

	s.logger.InfoContext(ctx, "admin logged in", slog.String("username", s.creds.Username))
	return token, nil
}

// CreateTimelineEntry validates in and stores a new timeline row.
func (s *AdminService) CreateTimelineEntry(ctx context.Context, in TimelineInput) (*model.TimelineEntry, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.check(in); err != nil {
		return nil, err
	}

	entry := &model.TimelineEntry{
		ID:           in.ID,
		Title:        in.Title,
		Organization: strings.TrimSpace(in.Organization),
		StartDate:    strings.TrimSpace(in.StartDate),
		EndDate:      strings.TrimSpace(in.EndDate),
		Current:      in.Current,
		Summary:      strings.TrimSpace(in.Summary),
		Bullets:      trimList(in.Bullets),
		Kind:         in.Kind,
	}
	if err := s.store.CreateTimelineEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("service/admin: %w", err)
	}

	s.logger.InfoContext(ctx, "timeline entry created", slog.String("id", entry.ID))
	return entry, nil
}

// CreateSkill validates in and stores a new skill.
func (s *AdminService) CreateSkill(ctx context.Context, in SkillInput) (*model.Skill, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return nil, err
	}

	skill := &model.Skill{
		ID:        in.ID,
		Category:  strings.TrimSpace(in.Category),
		Name:      in.Name,
		Level:     in.Level,
		SortOrder: in.SortOrder,
	}
	if err := s.store.CreateSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("service/admin: %w", err)
	}

	s.logger.InfoContext(ctx, "skill created", slog.String("id", skill.ID))
	return skill, nil
}

// CreateProject validates in and stores a new project.
func (s *AdminService) CreateProject(ctx context.Context, in ProjectInput) (*model.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.check(in); err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:           in.ID,
		Title:        in.Title,
		Description:  strings.TrimSpace(in.Description),
		Technologies: trimList(in.Technologies),
		Bullets:      trimList(in.Bullets),
		MediaURL:     strings.TrimSpace(in.MediaURL),
		MediaType:    in.MediaType,
		WebsiteURL:   strings.TrimSpace(in.WebsiteURL),
		Category:     strings.TrimSpace(in.Category),
		Featured:     in.Featured,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("service/admin: %w", err)
	}

	s.logger.InfoContext(ctx, "project created", slog.String("id", project.ID))
	return project, nil
}

// SaveContact validates in and upserts the contact row.
func (s *AdminService) SaveContact(ctx context.Context, in ContactInput) (*model.PrivateContact, error) {
	in.AccessCode = strings.TrimSpace(in.AccessCode)
	if err := s.check(in); err != nil {
		return nil, err
	}

	contact := &model.PrivateContact{
		ID:          in.ID,
		AccessCode:  in.AccessCode,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		LinkedInURL: strings.TrimSpace(in.LinkedInURL),
		Location:    strings.TrimSpace(in.Location),
	}
	if err := s.store.SaveContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("service/admin: %w", err)
	}

	s.logger.InfoContext(ctx, "contact saved", slog.String("id", contact.ID))
	return contact, nil
}

// Delete removes one row from the named table.
func (s *AdminService) Delete(ctx context.Context, table, id string) error {
	t, ok := repository.ParseTable(table)
	if !ok {
		return apperror.ValidationFailed("table", fmt.Sprintf("unknown table %q", table))
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "id is required")
	}

	if err := s.store.Delete(ctx, t, id); err != nil {
		return fmt.Errorf("service/admin: %w", err)
	}

	s.logger.InfoContext(ctx, "row deleted", slog.String("table", table), slog.String("id", id))
	return nil
}

// check runs struct validation and turns the first failure into an
// apperror.ValidationFailed naming the JSON-ish field.
func (s *AdminService) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := lowerFirst(fe.Field())
		return apperror.ValidationFailed(field, fmt.Sprintf("%s failed %q validation", field, fe.Tag()))
	}
	return apperror.ValidationFailed("", err.Error())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
