package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

// CalendarEntry is one officer assignment pulled from an external
// calendar source.
type CalendarEntry struct {
	SourcePageID string
	OfficerName  string
	OfficerEmail string
	Event        string
	EventType    string
	Role         string
	Points       int
	Timestamp    *time.Time
}

type CalendarClient interface {
	FetchEntries(ctx context.Context, sourceID string, since *time.Time) ([]CalendarEntry, error)
}

type SyncOrganizationRepository interface {
	ListSyncEnabled(ctx context.Context) ([]domain.Organization, error)
	MarkSynced(ctx context.Context, id uint, at time.Time) error
}

type SyncContributionRepository interface {
	GetOfficerByName(ctx context.Context, orgID uint, name string) (domain.Officer, error)
	CreateOfficer(ctx context.Context, officer domain.Officer) (domain.Officer, error)
	ContributionExistsBySource(ctx context.Context, orgID uint, officerUUID, sourcePageID, role string) (bool, error)
	CreateContribution(ctx context.Context, contribution domain.OfficerContribution) (domain.OfficerContribution, error)
}

// SyncService imports officer contributions from external calendar
// sources for every organization that has sync enabled.
type SyncService struct {
	orgRepo SyncOrganizationRepository
	repo    SyncContributionRepository
	client  CalendarClient
}

func NewSyncService(orgRepo SyncOrganizationRepository, repo SyncContributionRepository, client CalendarClient) *SyncService {
	return &SyncService{
		orgRepo: orgRepo,
		repo:    repo,
		client:  client,
	}
}

// SyncAll pulls entries for every sync-enabled organization. A failing
// organization is logged and skipped; the others still sync. Returns the
// number of contributions imported.
func (s *SyncService) SyncAll(ctx context.Context) (int, error) {
	orgs, err := s.orgRepo.ListSyncEnabled(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.orgRepo.ListSyncEnabled -> %w", err)
	}

	imported := 0
	for _, org := range orgs {
		count, err := s.syncOrganization(ctx, org)
		if err != nil {
			zap.L().Error("calendar sync failed",
				zap.String("org_prefix", org.Prefix),
				zap.Error(err),
			)
			continue
		}
		imported += count
	}

	return imported, nil
}

func (s *SyncService) syncOrganization(ctx context.Context, org domain.Organization) (int, error) {
	entries, err := s.client.FetchEntries(ctx, org.CalendarSourceID, org.LastSyncAt)
	if err != nil {
		return 0, fmt.Errorf("s.client.FetchEntries -> %w", err)
	}

	imported := 0
	for _, entry := range entries {
		created, err := s.importEntry(ctx, org, entry)
		if err != nil {
			return imported, err
		}
		if created {
			imported++
		}
	}

	if err = s.orgRepo.MarkSynced(ctx, org.ID, time.Now()); err != nil {
		return imported, fmt.Errorf("s.orgRepo.MarkSynced -> %w", err)
	}

	return imported, nil
}

// importEntry upserts the officer and records the contribution unless the
// same source page and role were imported before.
func (s *SyncService) importEntry(ctx context.Context, org domain.Organization, entry CalendarEntry) (bool, error) {
	officer, err := s.repo.GetOfficerByName(ctx, org.ID, entry.OfficerName)
	if err != nil {
		if !errors.Is(err, repository.ErrOfficerNotFound) {
			return false, fmt.Errorf("s.repo.GetOfficerByName -> %w", err)
		}

		officer, err = s.repo.CreateOfficer(ctx, domain.Officer{
			UUID:           uuid.NewString(),
			OrganizationID: org.ID,
			Name:           entry.OfficerName,
			Email:          entry.OfficerEmail,
			Title:          "Unknown",
			Department:     "Unknown",
		})
		if err != nil {
			return false, fmt.Errorf("s.repo.CreateOfficer -> %w", err)
		}
	}

	exists, err := s.repo.ContributionExistsBySource(ctx, org.ID, officer.UUID, entry.SourcePageID, entry.Role)
	if err != nil {
		return false, fmt.Errorf("s.repo.ContributionExistsBySource -> %w", err)
	}
	if exists {
		return false, nil
	}

	basePoints := entry.Points
	if basePoints == 0 {
		basePoints = org.PointsPerEvent
	}

	_, err = s.repo.CreateContribution(ctx, domain.OfficerContribution{
		OrganizationID: org.ID,
		OfficerUUID:    officer.UUID,
		Event:          entry.Event,
		EventType:      entry.EventType,
		Role:           entry.Role,
		BasePoints:     basePoints,
		Weight:         decimal.NewFromInt(1),
		Timestamp:      entry.Timestamp,
		SourcePageID:   entry.SourcePageID,
	})
	if err != nil {
		return false, fmt.Errorf("s.repo.CreateContribution -> %w", err)
	}

	return true, nil
}
