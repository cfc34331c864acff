package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository/dao"
)

var (
	ErrOfficerNotFound      = dao.ErrOfficerNotFound
	ErrContributionNotFound = dao.ErrContributionNotFound
)

type ContributionDAO interface {
	InsertOfficer(ctx context.Context, officer dao.Officer) (dao.Officer, error)
	FindOfficerByUUID(ctx context.Context, uuid string) (dao.Officer, error)
	FindOfficerByName(ctx context.Context, orgID uint, name string) (dao.Officer, error)
	FindOfficerByEmail(ctx context.Context, orgID uint, email string) (dao.Officer, error)
	ListOfficers(ctx context.Context, orgID uint) ([]dao.Officer, error)
	InsertContribution(ctx context.Context, contribution dao.OfficerContribution) (dao.OfficerContribution, error)
	FindContributionByID(ctx context.Context, id uint) (dao.OfficerContribution, error)
	ContributionExists(ctx context.Context, orgID uint, officerUUID, event, role string) (bool, error)
	ContributionExistsBySource(ctx context.Context, orgID uint, officerUUID, sourcePageID, role string) (bool, error)
	UpdateWeight(ctx context.Context, id uint, weight decimal.Decimal) error
	DeleteContribution(ctx context.Context, id uint) error
	FindContributionsByOfficer(ctx context.Context, officerUUID string, start, end *time.Time) ([]dao.OfficerContribution, error)
}

type ContributionRepository struct {
	dao ContributionDAO
}

func NewContributionRepository(dao ContributionDAO) *ContributionRepository {
	return &ContributionRepository{
		dao: dao,
	}
}

func (r *ContributionRepository) officerDomainToDao(o domain.Officer) dao.Officer {
	var email *string
	if o.Email != "" {
		email = &o.Email
	}

	return dao.Officer{
		UUID:           o.UUID,
		OrganizationID: o.OrganizationID,
		Email:          email,
		Name:           o.Name,
		Title:          o.Title,
		Department:     o.Department,
	}
}

func (r *ContributionRepository) officerDaoToDomain(o dao.Officer) domain.Officer {
	officer := domain.Officer{
		UUID:           o.UUID,
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Title:          o.Title,
		Department:     o.Department,
	}
	if o.Email != nil {
		officer.Email = *o.Email
	}

	return officer
}

func (r *ContributionRepository) contributionDomainToDao(c domain.OfficerContribution) dao.OfficerContribution {
	return dao.OfficerContribution{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		OfficerUUID:    c.OfficerUUID,
		Event:          c.Event,
		EventType:      c.EventType,
		Role:           c.Role,
		BasePoints:     c.BasePoints,
		Weight:         c.Weight,
		Timestamp:      c.Timestamp,
		SourcePageID:   c.SourcePageID,
	}
}

func (r *ContributionRepository) contributionDaoToDomain(c dao.OfficerContribution) domain.OfficerContribution {
	return domain.OfficerContribution{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		OfficerUUID:    c.OfficerUUID,
		Event:          c.Event,
		EventType:      c.EventType,
		Role:           c.Role,
		BasePoints:     c.BasePoints,
		Weight:         c.Weight,
		Timestamp:      c.Timestamp,
		SourcePageID:   c.SourcePageID,
	}
}

func (r *ContributionRepository) CreateOfficer(ctx context.Context, officer domain.Officer) (domain.Officer, error) {
	created, err := r.dao.InsertOfficer(ctx, r.officerDomainToDao(officer))
	if err != nil {
		return domain.Officer{}, fmt.Errorf("r.dao.InsertOfficer -> %w", err)
	}

	return r.officerDaoToDomain(created), nil
}

func (r *ContributionRepository) GetOfficerByUUID(ctx context.Context, uuid string) (domain.Officer, error) {
	officer, err := r.dao.FindOfficerByUUID(ctx, uuid)
	if err != nil {
		return domain.Officer{}, fmt.Errorf("r.dao.FindOfficerByUUID -> %w", err)
	}

	return r.officerDaoToDomain(officer), nil
}

func (r *ContributionRepository) GetOfficerByName(ctx context.Context, orgID uint, name string) (domain.Officer, error) {
	officer, err := r.dao.FindOfficerByName(ctx, orgID, name)
	if err != nil {
		return domain.Officer{}, fmt.Errorf("r.dao.FindOfficerByName -> %w", err)
	}

	return r.officerDaoToDomain(officer), nil
}

func (r *ContributionRepository) GetOfficerByEmail(ctx context.Context, orgID uint, email string) (domain.Officer, error) {
	officer, err := r.dao.FindOfficerByEmail(ctx, orgID, email)
	if err != nil {
		return domain.Officer{}, fmt.Errorf("r.dao.FindOfficerByEmail -> %w", err)
	}

	return r.officerDaoToDomain(officer), nil
}

func (r *ContributionRepository) ListOfficers(ctx context.Context, orgID uint) ([]domain.Officer, error) {
	officerDAOs, err := r.dao.ListOfficers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListOfficers -> %w", err)
	}

	officers := make([]domain.Officer, len(officerDAOs))
	for i, o := range officerDAOs {
		officers[i] = r.officerDaoToDomain(o)
	}

	return officers, nil
}

func (r *ContributionRepository) CreateContribution(ctx context.Context, contribution domain.OfficerContribution) (domain.OfficerContribution, error) {
	created, err := r.dao.InsertContribution(ctx, r.contributionDomainToDao(contribution))
	if err != nil {
		return domain.OfficerContribution{}, fmt.Errorf("r.dao.InsertContribution -> %w", err)
	}

	return r.contributionDaoToDomain(created), nil
}

func (r *ContributionRepository) GetContributionByID(ctx context.Context, id uint) (domain.OfficerContribution, error) {
	contribution, err := r.dao.FindContributionByID(ctx, id)
	if err != nil {
		return domain.OfficerContribution{}, fmt.Errorf("r.dao.FindContributionByID -> %w", err)
	}

	return r.contributionDaoToDomain(contribution), nil
}

// ContributionExists dedupes manual entries on officer, event and role
// within one organization.
func (r *ContributionRepository) ContributionExists(ctx context.Context, orgID uint, officerUUID, event, role string) (bool, error) {
	exists, err := r.dao.ContributionExists(ctx, orgID, officerUUID, event, role)
	if err != nil {
		return false, fmt.Errorf("r.dao.ContributionExists -> %w", err)
	}

	return exists, nil
}

// ContributionExistsBySource dedupes synced entries on their source page.
func (r *ContributionRepository) ContributionExistsBySource(ctx context.Context, orgID uint, officerUUID, sourcePageID, role string) (bool, error) {
	exists, err := r.dao.ContributionExistsBySource(ctx, orgID, officerUUID, sourcePageID, role)
	if err != nil {
		return false, fmt.Errorf("r.dao.ContributionExistsBySource -> %w", err)
	}

	return exists, nil
}

func (r *ContributionRepository) UpdateWeight(ctx context.Context, id uint, weight decimal.Decimal) error {
	if err := r.dao.UpdateWeight(ctx, id, weight); err != nil {
		return fmt.Errorf("r.dao.UpdateWeight -> %w", err)
	}

	return nil
}

func (r *ContributionRepository) DeleteContribution(ctx context.Context, id uint) error {
	if err := r.dao.DeleteContribution(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteContribution -> %w", err)
	}

	return nil
}

func (r *ContributionRepository) ListByOfficer(ctx context.Context, officerUUID string, start, end *time.Time) ([]domain.OfficerContribution, error) {
	contributionDAOs, err := r.dao.FindContributionsByOfficer(ctx, officerUUID, start, end)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindContributionsByOfficer -> %w", err)
	}

	contributions := make([]domain.OfficerContribution, len(contributionDAOs))
	for i, c := range contributionDAOs {
		contributions[i] = r.contributionDaoToDomain(c)
	}

	return contributions, nil
}
