package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

var (
	ErrOrgNotFound     = repository.ErrOrgNotFound
	ErrOrgPrefixExists = repository.ErrOrgPrefixExists
)

type OrganizationRepository interface {
	Create(ctx context.Context, org domain.Organization) (domain.Organization, error)
	GetByID(ctx context.Context, id uint) (domain.Organization, error)
	GetByPrefix(ctx context.Context, prefix string) (domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org domain.Organization) (domain.Organization, error)
	Deactivate(ctx context.Context, id uint) error
	ListSyncEnabled(ctx context.Context) ([]domain.Organization, error)
	MarkSynced(ctx context.Context, id uint, at time.Time) error
}

type OrganizationService struct {
	repo OrganizationRepository
}

func NewOrganizationService(repo OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		repo: repo,
	}
}

func (s *OrganizationService) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	org.IsActive = true
	if org.PointsPerEvent <= 0 {
		org.PointsPerEvent = 1
	}

	created, err := s.repo.Create(ctx, org)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *OrganizationService) GetByPrefix(ctx context.Context, prefix string) (domain.Organization, error) {
	org, err := s.repo.GetByPrefix(ctx, prefix)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.GetByPrefix -> %w", err)
	}

	return org, nil
}

func (s *OrganizationService) GetByID(ctx context.Context, id uint) (domain.Organization, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return org, nil
}

func (s *OrganizationService) List(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return orgs, nil
}

func (s *OrganizationService) Update(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	existing, err := s.repo.GetByID(ctx, org.ID)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	existing.Name = org.Name
	existing.Prefix = org.Prefix
	existing.Description = org.Description
	existing.PointsPerEvent = org.PointsPerEvent
	existing.CalendarSyncEnabled = org.CalendarSyncEnabled
	existing.CalendarSourceID = org.CalendarSourceID

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Deactivate soft-deletes the organization; its scoped rows remain.
func (s *OrganizationService) Deactivate(ctx context.Context, id uint) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}
