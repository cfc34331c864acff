package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

var ErrAlreadyMember = errors.New("member already belongs to this organization")

type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Member, error)
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	AddToOrganization(ctx context.Context, memberID, orgID uint) (domain.Membership, error)
	GetMembership(ctx context.Context, memberID, orgID uint) (domain.Membership, error)
	ListByOrganization(ctx context.Context, orgID uint) ([]domain.Member, error)
}

type MemberOrganizationRepository interface {
	GetByPrefix(ctx context.Context, prefix string) (domain.Organization, error)
}

type MemberService struct {
	repo    MemberRepository
	orgRepo MemberOrganizationRepository
}

func NewMemberService(repo MemberRepository, orgRepo MemberOrganizationRepository) *MemberService {
	return &MemberService{
		repo:    repo,
		orgRepo: orgRepo,
	}
}

// EnrollMember adds a member to the organization, creating the member
// record on first sight (matched by email). The returned bool reports
// whether a new member was created. An existing active membership fails
// with ErrAlreadyMember.
func (s *MemberService) EnrollMember(ctx context.Context, orgPrefix string, member domain.Member) (domain.Member, bool, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.Member{}, false, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	existing, err := s.repo.GetByEmail(ctx, member.Email)
	if err == nil {
		if _, err = s.repo.GetMembership(ctx, existing.ID, org.ID); err == nil {
			return domain.Member{}, false, ErrAlreadyMember
		} else if !errors.Is(err, repository.ErrNotMember) {
			return domain.Member{}, false, fmt.Errorf("s.repo.GetMembership -> %w", err)
		}

		if _, err = s.repo.AddToOrganization(ctx, existing.ID, org.ID); err != nil {
			return domain.Member{}, false, fmt.Errorf("s.repo.AddToOrganization -> %w", err)
		}

		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return domain.Member{}, false, fmt.Errorf("s.repo.GetByEmail -> %w", err)
	}

	member.UUID = uuid.NewString()
	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return domain.Member{}, false, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if _, err = s.repo.AddToOrganization(ctx, created.ID, org.ID); err != nil {
		return domain.Member{}, false, fmt.Errorf("s.repo.AddToOrganization -> %w", err)
	}

	return created, true, nil
}

func (s *MemberService) ListMembers(ctx context.Context, orgPrefix string) ([]domain.Member, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return nil, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	members, err := s.repo.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByOrganization -> %w", err)
	}

	return members, nil
}

// GetSelf resolves the member behind an authenticated UUID.
func (s *MemberService) GetSelf(ctx context.Context, memberUUID string) (domain.Member, error) {
	member, err := s.repo.GetByUUID(ctx, memberUUID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.GetByUUID -> %w", err)
	}

	return member, nil
}
