package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository/dao"
)

var (
	ErrOrgNotFound     = dao.ErrOrgNotFound
	ErrOrgPrefixExists = dao.ErrOrgPrefixExists
)

type OrganizationDAO interface {
	Insert(ctx context.Context, org dao.Organization) (dao.Organization, error)
	FindByID(ctx context.Context, id uint) (dao.Organization, error)
	FindByPrefix(ctx context.Context, prefix string) (dao.Organization, error)
	List(ctx context.Context) ([]dao.Organization, error)
	Update(ctx context.Context, org dao.Organization) (dao.Organization, error)
	Deactivate(ctx context.Context, id uint) error
	FindSyncEnabled(ctx context.Context) ([]dao.Organization, error)
	UpdateLastSyncAt(ctx context.Context, id uint, at time.Time) error
}

type OrganizationRepository struct {
	dao OrganizationDAO
}

func NewOrganizationRepository(dao OrganizationDAO) *OrganizationRepository {
	return &OrganizationRepository{
		dao: dao,
	}
}

func (r *OrganizationRepository) domainToDao(org domain.Organization) dao.Organization {
	return dao.Organization{
		ID:                  org.ID,
		Name:                org.Name,
		Prefix:              org.Prefix,
		Description:         org.Description,
		IsActive:            org.IsActive,
		PointsPerEvent:      org.PointsPerEvent,
		CalendarSyncEnabled: org.CalendarSyncEnabled,
		CalendarSourceID:    org.CalendarSourceID,
		LastSyncAt:          org.LastSyncAt,
		CreatedAt:           org.CreatedAt,
		UpdatedAt:           org.UpdatedAt,
	}
}

func (r *OrganizationRepository) daoToDomain(org dao.Organization) domain.Organization {
	return domain.Organization{
		ID:                  org.ID,
		Name:                org.Name,
		Prefix:              org.Prefix,
		Description:         org.Description,
		IsActive:            org.IsActive,
		PointsPerEvent:      org.PointsPerEvent,
		CalendarSyncEnabled: org.CalendarSyncEnabled,
		CalendarSourceID:    org.CalendarSourceID,
		LastSyncAt:          org.LastSyncAt,
		CreatedAt:           org.CreatedAt,
		UpdatedAt:           org.UpdatedAt,
	}
}

func (r *OrganizationRepository) daosToDomain(orgs []dao.Organization) []domain.Organization {
	result := make([]domain.Organization, len(orgs))
	for i, org := range orgs {
		result[i] = r.daoToDomain(org)
	}
	return result
}

func (r *OrganizationRepository) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(org))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uint) (domain.Organization, error) {
	org, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(org), nil
}

func (r *OrganizationRepository) GetByPrefix(ctx context.Context, prefix string) (domain.Organization, error) {
	org, err := r.dao.FindByPrefix(ctx, prefix)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.FindByPrefix -> %w", err)
	}

	return r.daoToDomain(org), nil
}

func (r *OrganizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daosToDomain(orgs), nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(org))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *OrganizationRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func (r *OrganizationRepository) ListSyncEnabled(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := r.dao.FindSyncEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSyncEnabled -> %w", err)
	}

	return r.daosToDomain(orgs), nil
}

func (r *OrganizationRepository) MarkSynced(ctx context.Context, id uint, at time.Time) error {
	if err := r.dao.UpdateLastSyncAt(ctx, id, at); err != nil {
		return fmt.Errorf("r.dao.UpdateLastSyncAt -> %w", err)
	}

	return nil
}
