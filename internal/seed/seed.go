// Package seed reads a portfolio content file and writes it into a store.
//
// A content file is one JSON document with four optional arrays: timeline,
// skills, projects and contacts. Field names match the public JSON API, plus
// "accessCode" on contacts (the API never returns it).
//
// Before decoding, the file is checked against the JSON Schema embedded from
// schema.json. Schema violations come back as a *ValidationError listing every
// offending field, so a bad file fails loudly instead of half-loading.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/sakif/portfolio/internal/model"
	"github.com/sakif/portfolio/internal/repository"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// Contact is a contact row as written in a content file.
type Contact struct {
	ID          string `json:"id"`
	AccessCode  string `json:"accessCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedinUrl"`
	Location    string `json:"location"`
}

func (c Contact) toModel() model.PrivateContact {
	return model.PrivateContact{
		ID:          c.ID,
		AccessCode:  c.AccessCode,
		Phone:       c.Phone,
		Email:       c.Email,
		LinkedInURL: c.LinkedInURL,
		Location:    c.Location,
	}
}

// Document is a decoded content file.
type Document struct {
	Timeline []model.TimelineEntry `json:"timeline"`
	Skills   []model.Skill         `json:"skills"`
	Projects []model.Project       `json:"projects"`
	Contacts []Contact             `json:"contacts"`
}

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation in a content file.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("content file failed validation:\n")
	for i, e := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, e.Field, e.Message)
	}
	return sb.String()
}

// Parse validates data against the content schema and decodes it.
func Parse(data []byte) (*Document, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("seed: validating content file: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{}
		for _, re := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{Field: re.Field(), Message: re.Description()})
		}
		return nil, ve
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed: decoding content file: %w", err)
	}
	return &doc, nil
}

// LoadFile reads and parses the content file at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Summary counts the rows Apply wrote.
type Summary struct {
	Timeline int
	Skills   int
	Projects int
	Contacts int
}

// Apply writes every row of doc into w, stopping at the first error.
// Rows keep their file IDs when given; blank IDs are generated by the store.
func Apply(ctx context.Context, doc *Document, w repository.ContentWriter, logger *slog.Logger) (Summary, error) {
	var sum Summary

	for i := range doc.Timeline {
		if err := w.CreateTimelineEntry(ctx, &doc.Timeline[i]); err != nil {
			return sum, fmt.Errorf("seed: timeline %q: %w", doc.Timeline[i].Title, err)
		}
		sum.Timeline++
	}

	for i := range doc.Skills {
		if err := w.CreateSkill(ctx, &doc.Skills[i]); err != nil {
			return sum, fmt.Errorf("seed: skill %q: %w", doc.Skills[i].Name, err)
		}
		sum.Skills++
	}

	for i := range doc.Projects {
		if err := w.CreateProject(ctx, &doc.Projects[i]); err != nil {
			return sum, fmt.Errorf("seed: project %q: %w", doc.Projects[i].Title, err)
		}
		sum.Projects++
	}

	for _, c := range doc.Contacts {
		contact := c.toModel()
		if err := w.SaveContact(ctx, &contact); err != nil {
			return sum, fmt.Errorf("seed: contact %d: %w", sum.Contacts+1, err)
		}
		sum.Contacts++
	}

	logger.Info("content loaded",
		"timeline", sum.Timeline,
		"skills", sum.Skills,
		"projects", sum.Projects,
		"contacts", sum.Contacts,
	)
	return sum, nil
}
