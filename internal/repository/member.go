package repository

import (
	"context"
	"fmt"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository/dao"
)

var (
	ErrMemberEmailExists = dao.ErrMemberEmailExists
	ErrMemberNotFound    = dao.ErrMemberNotFound
	ErrNotMember         = dao.ErrNotMember
)

type MemberDAO interface {
	Insert(ctx context.Context, member dao.Member) (dao.Member, error)
	FindByID(ctx context.Context, id uint) (dao.Member, error)
	FindByUUID(ctx context.Context, uuid string) (dao.Member, error)
	FindByEmail(ctx context.Context, email string) (dao.Member, error)
	FindByExternalID(ctx context.Context, externalID string) (dao.Member, error)
	FindByIdentifier(ctx context.Context, identifier string) (dao.Member, error)
	InsertMembership(ctx context.Context, membership dao.Membership) (dao.Membership, error)
	FindMembership(ctx context.Context, memberID, orgID uint) (dao.Membership, error)
	FindMembersByOrg(ctx context.Context, orgID uint) ([]dao.Member, error)
}

type MemberRepository struct {
	dao MemberDAO
}

func NewMemberRepository(dao MemberDAO) *MemberRepository {
	return &MemberRepository{
		dao: dao,
	}
}

func (r *MemberRepository) domainToDao(m domain.Member) dao.Member {
	return dao.Member{
		ID:         m.ID,
		UUID:       m.UUID,
		ExternalID: m.ExternalID,
		Email:      m.Email,
		Username:   m.Username,
		Name:       m.Name,
		Password:   m.Password,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *MemberRepository) daoToDomain(m dao.Member) domain.Member {
	return domain.Member{
		ID:         m.ID,
		UUID:       m.UUID,
		ExternalID: m.ExternalID,
		Email:      m.Email,
		Username:   m.Username,
		Name:       m.Name,
		Password:   m.Password,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *MemberRepository) membershipDaoToDomain(m dao.Membership) domain.Membership {
	return domain.Membership{
		ID:             m.ID,
		MemberID:       m.MemberID,
		OrganizationID: m.OrganizationID,
		IsActive:       m.IsActive,
		JoinedAt:       m.JoinedAt,
	}
}

func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id uint) (domain.Member, error) {
	member, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(member), nil
}

func (r *MemberRepository) GetByUUID(ctx context.Context, uuid string) (domain.Member, error) {
	member, err := r.dao.FindByUUID(ctx, uuid)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByUUID -> %w", err)
	}

	return r.daoToDomain(member), nil
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	member, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(member), nil
}

func (r *MemberRepository) GetByExternalID(ctx context.Context, externalID string) (domain.Member, error) {
	member, err := r.dao.FindByExternalID(ctx, externalID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByExternalID -> %w", err)
	}

	return r.daoToDomain(member), nil
}

// GetByIdentifier resolves a member by email, UUID or username.
func (r *MemberRepository) GetByIdentifier(ctx context.Context, identifier string) (domain.Member, error) {
	member, err := r.dao.FindByIdentifier(ctx, identifier)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByIdentifier -> %w", err)
	}

	return r.daoToDomain(member), nil
}

func (r *MemberRepository) AddToOrganization(ctx context.Context, memberID, orgID uint) (domain.Membership, error) {
	membership, err := r.dao.InsertMembership(ctx, dao.Membership{
		MemberID:       memberID,
		OrganizationID: orgID,
		IsActive:       true,
	})
	if err != nil {
		return domain.Membership{}, fmt.Errorf("r.dao.InsertMembership -> %w", err)
	}

	return r.membershipDaoToDomain(membership), nil
}

// GetMembership returns the active membership or ErrNotMember.
func (r *MemberRepository) GetMembership(ctx context.Context, memberID, orgID uint) (domain.Membership, error) {
	membership, err := r.dao.FindMembership(ctx, memberID, orgID)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("r.dao.FindMembership -> %w", err)
	}

	return r.membershipDaoToDomain(membership), nil
}

func (r *MemberRepository) ListByOrganization(ctx context.Context, orgID uint) ([]domain.Member, error) {
	members, err := r.dao.FindMembersByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMembersByOrg -> %w", err)
	}

	result := make([]domain.Member, len(members))
	for i, member := range members {
		result[i] = r.daoToDomain(member)
	}

	return result, nil
}
