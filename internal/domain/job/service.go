package job

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer is what the grid engine depends on: the Repository operations
// with validation and create-time defaults applied in front of the store.
type Servicer interface {
	Create(ctx context.Context, fields Fields, ownerID string) (string, error)
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Record, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "job_service"),
		now:  time.Now,
	}
}

func (s *Service) validate(fields Fields) error {
	if err := Status(fields.Status).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := FollowUpStatus(fields.FollowUpStatus).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := Referral(fields.Referral).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Create stores a new record for ownerID and returns its id. Missing owner
// id is rejected before any store call. When the record is already Applied
// and carries no dates, applicationDate defaults to today and followUpDate
// to today plus three days.
func (s *Service) Create(ctx context.Context, fields Fields, ownerID string) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("%w: missing owner id", ErrValidation)
	}
	if err := s.validate(fields); err != nil {
		return "", err
	}

	today := s.now()
	if fields.Status == StatusApplied.String() {
		if fields.ApplicationDate == "" {
			fields.ApplicationDate = FormatDate(today)
		}
		if fields.FollowUpDate == "" {
			fields.FollowUpDate = AddDays(today, 3)
		}
	}

	id, err := s.repo.Create(ctx, fields, ownerID)
	if err != nil {
		s.log.Error("failed to create job", "owner_id", ownerID, "error", err)
		return "", fmt.Errorf("create job: %w", err)
	}

	s.log.Info("job created", "job_id", id, "owner_id", ownerID)
	return id, nil
}

// Update replaces the full field map of an existing record.
func (s *Service) Update(ctx context.Context, id string, fields Fields) error {
	if id == "" {
		return fmt.Errorf("%w: missing job id", ErrValidation)
	}
	if err := s.validate(fields); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.log.Error("failed to update job", "job_id", id, "error", err)
		return fmt.Errorf("update job: %w", err)
	}

	s.log.Info("job updated", "job_id", id)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing job id", ErrValidation)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete job", "job_id", id, "error", err)
		return fmt.Errorf("delete job: %w", err)
	}

	s.log.Info("job deleted", "job_id", id)
	return nil
}

// ListByOwner returns the owner's records in creation order, capped at
// MaxListLimit per query.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Record, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: missing owner id", ErrValidation)
	}
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	records, err := s.repo.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		s.log.Error("failed to list jobs", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return records, nil
}
