package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sakif/portfolio/internal/apperror"
	"github.com/sakif/portfolio/internal/content"
	"github.com/sakif/portfolio/internal/repository"
)

// ContactService unlocks the private contact panel.
type ContactService struct {
	repo   repository.ContactRepository
	logger *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(repo repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

// Unlock submits code to a fresh, locked gate and returns the resulting gate.
//
// The returned gate is the whole answer: Unlocked with the contact, or Locked
// with content.InvalidCodeMessage. A blank code comes back Locked with no
// message and no lookup. Lookup errors are logged here and never surface in
// the gate's message, so callers cannot tell "no such code" from "backend down".
func (s *ContactService) Unlock(ctx context.Context, code string) content.ContactGate {
	gate := content.ContactGate{}.Submit(ctx, code, s.repo)

	switch {
	case gate.Unlocked():
		s.logger.Info("contact unlocked")
	case gate.Err != nil && !errors.Is(gate.Err, apperror.ErrNotFound):
		s.logger.Warn("contact lookup failed", slog.String("error", gate.Err.Error()))
	case gate.Message != "":
		s.logger.Info("contact unlock rejected")
	}
	return gate
}
