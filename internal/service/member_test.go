package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

type mockEnrollRepo struct {
	byEmail     map[string]domain.Member
	byUUID      map[string]domain.Member
	memberships map[uint][]uint
	orgMembers  map[uint][]domain.Member

	created          []domain.Member
	addedMemberships []domain.Membership
}

func newMockEnrollRepo() *mockEnrollRepo {
	return &mockEnrollRepo{
		byEmail:     make(map[string]domain.Member),
		byUUID:      make(map[string]domain.Member),
		memberships: make(map[uint][]uint),
		orgMembers:  make(map[uint][]domain.Member),
	}
}

func (m *mockEnrollRepo) Create(_ context.Context, member domain.Member) (domain.Member, error) {
	member.ID = uint(len(m.byEmail) + 1)
	m.byEmail[member.Email] = member
	m.byUUID[member.UUID] = member
	m.created = append(m.created, member)
	return member, nil
}

func (m *mockEnrollRepo) GetByUUID(_ context.Context, uuid string) (domain.Member, error) {
	member, ok := m.byUUID[uuid]
	if !ok {
		return domain.Member{}, repository.ErrMemberNotFound
	}
	return member, nil
}

func (m *mockEnrollRepo) GetByEmail(_ context.Context, email string) (domain.Member, error) {
	member, ok := m.byEmail[email]
	if !ok {
		return domain.Member{}, repository.ErrMemberNotFound
	}
	return member, nil
}

func (m *mockEnrollRepo) AddToOrganization(_ context.Context, memberID, orgID uint) (domain.Membership, error) {
	membership := domain.Membership{MemberID: memberID, OrganizationID: orgID, IsActive: true}
	m.memberships[memberID] = append(m.memberships[memberID], orgID)
	m.addedMemberships = append(m.addedMemberships, membership)
	return membership, nil
}

func (m *mockEnrollRepo) GetMembership(_ context.Context, memberID, orgID uint) (domain.Membership, error) {
	for _, id := range m.memberships[memberID] {
		if id == orgID {
			return domain.Membership{MemberID: memberID, OrganizationID: orgID, IsActive: true}, nil
		}
	}
	return domain.Membership{}, repository.ErrNotMember
}

func (m *mockEnrollRepo) ListByOrganization(_ context.Context, orgID uint) ([]domain.Member, error) {
	return m.orgMembers[orgID], nil
}

func enrollFixture() (*MemberService, *mockEnrollRepo) {
	orgRepo := &mockOrgRepo{orgs: map[string]domain.Organization{
		"chess": {ID: 3, Name: "Chess Club", Prefix: "chess"},
	}}
	repo := newMockEnrollRepo()
	return NewMemberService(repo, orgRepo), repo
}

func TestEnrollMember(t *testing.T) {
	t.Run("creates member and membership on first sight", func(t *testing.T) {
		svc, repo := enrollFixture()

		member, created, err := svc.EnrollMember(context.Background(), "chess", domain.Member{
			Email:    "alex@example.com",
			Username: "alex",
			Name:     "Alex",
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, member.UUID)
		require.Len(t, repo.created, 1)
		require.Len(t, repo.addedMemberships, 1)
		assert.Equal(t, member.ID, repo.addedMemberships[0].MemberID)
		assert.Equal(t, uint(3), repo.addedMemberships[0].OrganizationID)
	})

	t.Run("enrolls an existing member without creating", func(t *testing.T) {
		svc, repo := enrollFixture()
		repo.byEmail["alex@example.com"] = domain.Member{ID: 9, UUID: "mem-9", Email: "alex@example.com"}

		member, created, err := svc.EnrollMember(context.Background(), "chess", domain.Member{
			Email: "alex@example.com",
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "mem-9", member.UUID)
		assert.Empty(t, repo.created)
		require.Len(t, repo.addedMemberships, 1)
		assert.Equal(t, uint(9), repo.addedMemberships[0].MemberID)
	})

	t.Run("active membership is rejected", func(t *testing.T) {
		svc, repo := enrollFixture()
		repo.byEmail["alex@example.com"] = domain.Member{ID: 9, UUID: "mem-9", Email: "alex@example.com"}
		repo.memberships[9] = []uint{3}

		_, _, err := svc.EnrollMember(context.Background(), "chess", domain.Member{
			Email: "alex@example.com",
		})
		assert.ErrorIs(t, err, ErrAlreadyMember)
		assert.Empty(t, repo.addedMemberships)
	})

	t.Run("membership in another organization does not block", func(t *testing.T) {
		svc, repo := enrollFixture()
		repo.byEmail["alex@example.com"] = domain.Member{ID: 9, UUID: "mem-9", Email: "alex@example.com"}
		repo.memberships[9] = []uint{7}

		_, created, err := svc.EnrollMember(context.Background(), "chess", domain.Member{
			Email: "alex@example.com",
		})
		require.NoError(t, err)
		assert.False(t, created)
		require.Len(t, repo.addedMemberships, 1)
		assert.Equal(t, uint(3), repo.addedMemberships[0].OrganizationID)
	})

	t.Run("unknown organization", func(t *testing.T) {
		svc, repo := enrollFixture()

		_, _, err := svc.EnrollMember(context.Background(), "nope", domain.Member{
			Email: "alex@example.com",
		})
		assert.ErrorIs(t, err, ErrOrgNotFound)
		assert.Empty(t, repo.created)
	})
}

func TestListMembers(t *testing.T) {
	t.Run("returns the organization roster", func(t *testing.T) {
		svc, repo := enrollFixture()
		repo.orgMembers[3] = []domain.Member{
			{UUID: "mem-1", Username: "alex"},
			{UUID: "mem-2", Username: "blake"},
		}

		members, err := svc.ListMembers(context.Background(), "chess")
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "alex", members[0].Username)
	})

	t.Run("unknown organization", func(t *testing.T) {
		svc, _ := enrollFixture()

		_, err := svc.ListMembers(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestGetSelf(t *testing.T) {
	svc, repo := enrollFixture()
	repo.byUUID["mem-9"] = domain.Member{ID: 9, UUID: "mem-9", Email: "alex@example.com"}

	member, err := svc.GetSelf(context.Background(), "mem-9")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", member.Email)

	_, err = svc.GetSelf(context.Background(), "mem-0")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
