package service

import (
	"context"
	"fmt"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

var (
	ErrNotMember           = repository.ErrNotMember
	ErrTransactionNotFound = repository.ErrTransactionNotFound
)

type PointsRepository interface {
	Create(ctx context.Context, transaction domain.PointTransaction) (domain.PointTransaction, error)
	SumForMember(ctx context.Context, memberID, orgID uint) (float64, error)
	RecentForMember(ctx context.Context, memberID, orgID uint) ([]domain.PointTransaction, error)
	Leaderboard(ctx context.Context, orgID uint) ([]domain.LeaderboardEntry, error)
	Delete(ctx context.Context, id, orgID uint) error
}

type PointsMemberRepository interface {
	GetByIdentifier(ctx context.Context, identifier string) (domain.Member, error)
	GetMembership(ctx context.Context, memberID, orgID uint) (domain.Membership, error)
}

type PointsOrganizationRepository interface {
	GetByPrefix(ctx context.Context, prefix string) (domain.Organization, error)
}

type PointsService struct {
	orgRepo    PointsOrganizationRepository
	memberRepo PointsMemberRepository
	repo       PointsRepository
}

func NewPointsService(orgRepo PointsOrganizationRepository, memberRepo PointsMemberRepository, repo PointsRepository) *PointsService {
	return &PointsService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		repo:       repo,
	}
}

// GetMemberPoints aggregates one member's points in one organization.
// The total is summed by the database over the full history; the breakdown
// is capped at the 20 most recent transactions. A missing or inactive
// membership surfaces as ErrNotMember.
func (s *PointsService) GetMemberPoints(ctx context.Context, orgPrefix, identifier string) (domain.Organization, domain.Member, domain.MemberPoints, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.Organization{}, domain.Member{}, domain.MemberPoints{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	member, err := s.memberRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return domain.Organization{}, domain.Member{}, domain.MemberPoints{}, fmt.Errorf("s.memberRepo.GetByIdentifier -> %w", err)
	}

	if _, err = s.memberRepo.GetMembership(ctx, member.ID, org.ID); err != nil {
		return domain.Organization{}, domain.Member{}, domain.MemberPoints{}, fmt.Errorf("s.memberRepo.GetMembership -> %w", err)
	}

	total, err := s.repo.SumForMember(ctx, member.ID, org.ID)
	if err != nil {
		return domain.Organization{}, domain.Member{}, domain.MemberPoints{}, fmt.Errorf("s.repo.SumForMember -> %w", err)
	}

	breakdown, err := s.repo.RecentForMember(ctx, member.ID, org.ID)
	if err != nil {
		return domain.Organization{}, domain.Member{}, domain.MemberPoints{}, fmt.Errorf("s.repo.RecentForMember -> %w", err)
	}

	points := domain.MemberPoints{
		TotalPoints: total,
		Breakdown:   breakdown,
	}

	return org, member, points, nil
}

// AwardPoints records a transaction for a member of the organization.
func (s *PointsService) AwardPoints(ctx context.Context, orgPrefix, identifier string, transaction domain.PointTransaction) (domain.PointTransaction, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.PointTransaction{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	member, err := s.memberRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return domain.PointTransaction{}, fmt.Errorf("s.memberRepo.GetByIdentifier -> %w", err)
	}

	if _, err = s.memberRepo.GetMembership(ctx, member.ID, org.ID); err != nil {
		return domain.PointTransaction{}, fmt.Errorf("s.memberRepo.GetMembership -> %w", err)
	}

	transaction.OrganizationID = org.ID
	transaction.MemberID = member.ID

	created, err := s.repo.Create(ctx, transaction)
	if err != nil {
		return domain.PointTransaction{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Leaderboard returns per-member totals for the organization, highest
// first. Emails are stripped unless the caller authenticated.
func (s *PointsService) Leaderboard(ctx context.Context, orgPrefix string, includeEmails bool) ([]domain.LeaderboardEntry, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return nil, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	entries, err := s.repo.Leaderboard(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Leaderboard -> %w", err)
	}

	if !includeEmails {
		for i := range entries {
			entries[i].Email = ""
		}
	}

	return entries, nil
}

// DeleteTransaction removes a transaction. Transactions are otherwise
// immutable after creation.
func (s *PointsService) DeleteTransaction(ctx context.Context, orgPrefix string, id uint) error {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	if err = s.repo.Delete(ctx, id, org.ID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
