package learner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

// SetRole changes the role of a learner (admin only).
func (s *Service) SetRole(ctx context.Context, targetID uuid.UUID, role domain.Role) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	if !role.IsValid() {
		return domain.NewValidationError("role", "invalid role: must be 'user' or 'admin'")
	}

	// Prevent an admin from demoting themselves.
	if callerID, ok := ctxutil.LearnerIDFromCtx(ctx); ok && callerID == targetID && role == domain.RoleUser {
		return domain.NewValidationError("role", "cannot demote yourself")
	}

	if err := s.learners.UpdateRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("learner.SetRole: %w", err)
	}

	s.log.InfoContext(ctx, "learner role updated",
		slog.String("target_learner_id", targetID.String()),
		slog.String("new_role", role.String()),
	)
	return nil
}

// DailyRecipients returns learners with daily delivery enabled (admin only).
func (s *Service) DailyRecipients(ctx context.Context) ([]domain.Learner, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	learners, err := s.learners.ListDailyEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("learner.DailyRecipients: %w", err)
	}
	return learners, nil
}
