package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

var (
	ErrOfficerNotFound      = repository.ErrOfficerNotFound
	ErrContributionNotFound = repository.ErrContributionNotFound
	ErrInvalidWeight        = errors.New("weight must be a non-negative number")
	ErrContributionExists   = errors.New("contribution already recorded")
)

type ContributionRepository interface {
	CreateOfficer(ctx context.Context, officer domain.Officer) (domain.Officer, error)
	GetOfficerByUUID(ctx context.Context, uuid string) (domain.Officer, error)
	GetOfficerByName(ctx context.Context, orgID uint, name string) (domain.Officer, error)
	GetOfficerByEmail(ctx context.Context, orgID uint, email string) (domain.Officer, error)
	ListOfficers(ctx context.Context, orgID uint) ([]domain.Officer, error)
	CreateContribution(ctx context.Context, contribution domain.OfficerContribution) (domain.OfficerContribution, error)
	GetContributionByID(ctx context.Context, id uint) (domain.OfficerContribution, error)
	ContributionExists(ctx context.Context, orgID uint, officerUUID, event, role string) (bool, error)
	UpdateWeight(ctx context.Context, id uint, weight decimal.Decimal) error
	DeleteContribution(ctx context.Context, id uint) error
	ListByOfficer(ctx context.Context, officerUUID string, start, end *time.Time) ([]domain.OfficerContribution, error)
}

type ContributionOrganizationRepository interface {
	GetByPrefix(ctx context.Context, prefix string) (domain.Organization, error)
}

type ContributionService struct {
	repo    ContributionRepository
	orgRepo ContributionOrganizationRepository
}

func NewContributionService(repo ContributionRepository, orgRepo ContributionOrganizationRepository) *ContributionService {
	return &ContributionService{
		repo:    repo,
		orgRepo: orgRepo,
	}
}

// OfficerPoints aggregates one officer's contributions over an inclusive
// date range. TotalPoints is Σ base×weight; weighted values are computed
// on read, never stored.
func (s *ContributionService) OfficerPoints(ctx context.Context, officerUUID string, start, end *time.Time) (domain.OfficerAggregate, error) {
	officer, err := s.repo.GetOfficerByUUID(ctx, officerUUID)
	if err != nil {
		return domain.OfficerAggregate{}, fmt.Errorf("s.repo.GetOfficerByUUID -> %w", err)
	}

	return s.aggregate(ctx, officer, start, end)
}

// AllOfficerPoints aggregates every officer, sorted by total points
// descending. An empty orgPrefix spans all organizations.
func (s *ContributionService) AllOfficerPoints(ctx context.Context, orgPrefix string, start, end *time.Time) ([]domain.OfficerAggregate, error) {
	var orgID uint
	if orgPrefix != "" {
		org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
		if err != nil {
			return nil, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
		}
		orgID = org.ID
	}

	officers, err := s.repo.ListOfficers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListOfficers -> %w", err)
	}

	aggregates := make([]domain.OfficerAggregate, len(officers))
	for i, officer := range officers {
		aggregate, err := s.aggregate(ctx, officer, start, end)
		if err != nil {
			return nil, fmt.Errorf("s.aggregate -> %w", err)
		}
		aggregates[i] = aggregate
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].TotalPoints.GreaterThan(aggregates[j].TotalPoints)
	})

	return aggregates, nil
}

func (s *ContributionService) aggregate(ctx context.Context, officer domain.Officer, start, end *time.Time) (domain.OfficerAggregate, error) {
	contributions, err := s.repo.ListByOfficer(ctx, officer.UUID, start, end)
	if err != nil {
		return domain.OfficerAggregate{}, fmt.Errorf("s.repo.ListByOfficer -> %w", err)
	}

	total := decimal.Zero
	totalBase := 0
	for _, c := range contributions {
		total = total.Add(c.WeightedPoints())
		totalBase += c.BasePoints
	}

	return domain.OfficerAggregate{
		Officer:         officer,
		TotalPoints:     total.Round(2),
		TotalBasePoints: totalBase,
		Contributions:   contributions,
	}, nil
}

// UpdateWeight re-weights one contribution and returns the officer's
// recomputed aggregate for the supplied range. rawWeight must parse as a
// non-negative number; anything else fails with ErrInvalidWeight and the
// stored weight is left untouched. Valid weights are rounded to two
// decimal places, half away from zero, before persisting.
func (s *ContributionService) UpdateWeight(ctx context.Context, id uint, rawWeight string, start, end *time.Time) (domain.OfficerAggregate, error) {
	weight, err := decimal.NewFromString(rawWeight)
	if err != nil || weight.IsNegative() {
		return domain.OfficerAggregate{}, ErrInvalidWeight
	}
	weight = weight.Round(2)

	contribution, err := s.repo.GetContributionByID(ctx, id)
	if err != nil {
		return domain.OfficerAggregate{}, fmt.Errorf("s.repo.GetContributionByID -> %w", err)
	}

	if err = s.repo.UpdateWeight(ctx, id, weight); err != nil {
		return domain.OfficerAggregate{}, fmt.Errorf("s.repo.UpdateWeight -> %w", err)
	}

	return s.OfficerPoints(ctx, contribution.OfficerUUID, start, end)
}

type AddContributionInput struct {
	OrgPrefix    string
	OfficerName  string
	OfficerEmail string
	Event        string
	EventType    string
	Role         string
	BasePoints   int
	Timestamp    *time.Time
}

// AddContribution records a contribution, creating the officer on first
// sight (matched by email when present, else by case-insensitive name
// within the organization). A record
// with the same officer, event and role already present fails with
// ErrContributionExists.
func (s *ContributionService) AddContribution(ctx context.Context, input AddContributionInput) (domain.OfficerContribution, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, input.OrgPrefix)
	if err != nil {
		return domain.OfficerContribution{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	officer, err := s.findOrCreateOfficer(ctx, org.ID, input.OfficerName, input.OfficerEmail)
	if err != nil {
		return domain.OfficerContribution{}, err
	}

	exists, err := s.repo.ContributionExists(ctx, org.ID, officer.UUID, input.Event, input.Role)
	if err != nil {
		return domain.OfficerContribution{}, fmt.Errorf("s.repo.ContributionExists -> %w", err)
	}
	if exists {
		return domain.OfficerContribution{}, ErrContributionExists
	}

	created, err := s.repo.CreateContribution(ctx, domain.OfficerContribution{
		OrganizationID: org.ID,
		OfficerUUID:    officer.UUID,
		Event:          input.Event,
		EventType:      input.EventType,
		Role:           input.Role,
		BasePoints:     input.BasePoints,
		Weight:         decimal.NewFromInt(1),
		Timestamp:      input.Timestamp,
	})
	if err != nil {
		return domain.OfficerContribution{}, fmt.Errorf("s.repo.CreateContribution -> %w", err)
	}

	return created, nil
}

func (s *ContributionService) DeleteContribution(ctx context.Context, id uint) error {
	if err := s.repo.DeleteContribution(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteContribution -> %w", err)
	}

	return nil
}

func (s *ContributionService) findOrCreateOfficer(ctx context.Context, orgID uint, name, email string) (domain.Officer, error) {
	// Email identifies an officer across name changes; fall back to the
	// name match for sources that carry no email.
	if email != "" {
		officer, err := s.repo.GetOfficerByEmail(ctx, orgID, email)
		if err == nil {
			return officer, nil
		}
		if !errors.Is(err, repository.ErrOfficerNotFound) {
			return domain.Officer{}, fmt.Errorf("s.repo.GetOfficerByEmail -> %w", err)
		}
	}

	officer, err := s.repo.GetOfficerByName(ctx, orgID, name)
	if err == nil {
		return officer, nil
	}
	if !errors.Is(err, repository.ErrOfficerNotFound) {
		return domain.Officer{}, fmt.Errorf("s.repo.GetOfficerByName -> %w", err)
	}

	created, err := s.repo.CreateOfficer(ctx, domain.Officer{
		UUID:           uuid.NewString(),
		OrganizationID: orgID,
		Name:           name,
		Email:          email,
		Title:          "Unknown",
		Department:     "Unknown",
	})
	if err != nil {
		return domain.Officer{}, fmt.Errorf("s.repo.CreateOfficer -> %w", err)
	}

	return created, nil
}
