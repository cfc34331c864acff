package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

type mockPointsRepo struct {
	sum         float64
	breakdown   []domain.PointTransaction
	leaderboard []domain.LeaderboardEntry

	created []domain.PointTransaction
	deleted []uint
}

func (m *mockPointsRepo) Create(_ context.Context, transaction domain.PointTransaction) (domain.PointTransaction, error) {
	transaction.ID = uint(len(m.created) + 1)
	m.created = append(m.created, transaction)
	return transaction, nil
}

func (m *mockPointsRepo) SumForMember(_ context.Context, _, _ uint) (float64, error) {
	return m.sum, nil
}

func (m *mockPointsRepo) RecentForMember(_ context.Context, _, _ uint) ([]domain.PointTransaction, error) {
	return m.breakdown, nil
}

func (m *mockPointsRepo) Leaderboard(_ context.Context, _ uint) ([]domain.LeaderboardEntry, error) {
	return m.leaderboard, nil
}

func (m *mockPointsRepo) Delete(_ context.Context, id, _ uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockMemberRepo struct {
	members     map[string]domain.Member
	memberships map[uint]domain.Membership
}

func (m *mockMemberRepo) GetByIdentifier(_ context.Context, identifier string) (domain.Member, error) {
	member, ok := m.members[identifier]
	if !ok {
		return domain.Member{}, repository.ErrMemberNotFound
	}
	return member, nil
}

func (m *mockMemberRepo) GetMembership(_ context.Context, memberID, _ uint) (domain.Membership, error) {
	membership, ok := m.memberships[memberID]
	if !ok {
		return domain.Membership{}, repository.ErrNotMember
	}
	return membership, nil
}

func pointsFixture(total float64, breakdown []domain.PointTransaction) (*PointsService, *mockPointsRepo) {
	orgRepo := &mockOrgRepo{orgs: map[string]domain.Organization{
		"chess": {ID: 3, Name: "Chess Club", Prefix: "chess"},
	}}
	memberRepo := &mockMemberRepo{
		members: map[string]domain.Member{
			"alex@example.com": {ID: 9, UUID: "mem-9", Email: "alex@example.com", Username: "alex"},
		},
		memberships: map[uint]domain.Membership{
			9: {MemberID: 9, OrganizationID: 3},
		},
	}
	repo := &mockPointsRepo{sum: total, breakdown: breakdown}
	return NewPointsService(orgRepo, memberRepo, repo), repo
}

func TestGetMemberPoints(t *testing.T) {
	t.Run("returns database total with recent breakdown", func(t *testing.T) {
		breakdown := []domain.PointTransaction{
			{ID: 2, Event: "Game night", Points: 5},
			{ID: 1, Event: "Signup", Points: 2},
		}
		svc, _ := pointsFixture(42.5, breakdown)

		org, member, points, err := svc.GetMemberPoints(context.Background(), "chess", "alex@example.com")
		require.NoError(t, err)
		assert.Equal(t, "chess", org.Prefix)
		assert.Equal(t, "mem-9", member.UUID)
		assert.Equal(t, 42.5, points.TotalPoints)
		assert.Equal(t, breakdown, points.Breakdown)
	})

	t.Run("zero total with empty breakdown is a valid result", func(t *testing.T) {
		svc, _ := pointsFixture(0, nil)

		_, _, points, err := svc.GetMemberPoints(context.Background(), "chess", "alex@example.com")
		require.NoError(t, err)
		assert.Zero(t, points.TotalPoints)
		assert.Empty(t, points.Breakdown)
	})

	t.Run("unknown organization", func(t *testing.T) {
		svc, _ := pointsFixture(0, nil)

		_, _, _, err := svc.GetMemberPoints(context.Background(), "nope", "alex@example.com")
		assert.ErrorIs(t, err, ErrOrgNotFound)
	})

	t.Run("unknown member", func(t *testing.T) {
		svc, _ := pointsFixture(0, nil)

		_, _, _, err := svc.GetMemberPoints(context.Background(), "chess", "nobody@example.com")
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("member without a membership", func(t *testing.T) {
		svc, _ := pointsFixture(0, nil)
		svc.memberRepo.(*mockMemberRepo).members["drifter@example.com"] = domain.Member{ID: 11}

		_, _, _, err := svc.GetMemberPoints(context.Background(), "chess", "drifter@example.com")
		assert.ErrorIs(t, err, ErrNotMember)
	})
}

func TestAwardPoints(t *testing.T) {
	t.Run("stamps organization and member onto the transaction", func(t *testing.T) {
		svc, repo := pointsFixture(0, nil)

		created, err := svc.AwardPoints(context.Background(), "chess", "alex@example.com", domain.PointTransaction{
			Event:  "Bake sale",
			Points: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), created.OrganizationID)
		assert.Equal(t, uint(9), created.MemberID)
		require.Len(t, repo.created, 1)
	})

	t.Run("requires membership", func(t *testing.T) {
		svc, repo := pointsFixture(0, nil)
		svc.memberRepo.(*mockMemberRepo).members["drifter@example.com"] = domain.Member{ID: 11}

		_, err := svc.AwardPoints(context.Background(), "chess", "drifter@example.com", domain.PointTransaction{Points: 10})
		assert.ErrorIs(t, err, ErrNotMember)
		assert.Empty(t, repo.created)
	})
}

func TestLeaderboard(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		{MemberUUID: "mem-9", Username: "alex", Email: "alex@example.com", TotalPoints: 42},
		{MemberUUID: "mem-4", Username: "blake", Email: "blake@example.com", TotalPoints: 17},
	}

	t.Run("authenticated callers see emails", func(t *testing.T) {
		svc, repo := pointsFixture(0, nil)
		repo.leaderboard = entries

		got, err := svc.Leaderboard(context.Background(), "chess", true)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "alex@example.com", got[0].Email)
	})

	t.Run("anonymous callers get stripped emails", func(t *testing.T) {
		svc, repo := pointsFixture(0, nil)
		repo.leaderboard = []domain.LeaderboardEntry{
			{MemberUUID: "mem-9", Username: "alex", Email: "alex@example.com", TotalPoints: 42},
		}

		got, err := svc.Leaderboard(context.Background(), "chess", false)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Email)
		assert.Equal(t, "alex", got[0].Username)
	})
}

func TestDeleteTransaction(t *testing.T) {
	svc, repo := pointsFixture(0, nil)

	err := svc.DeleteTransaction(context.Background(), "chess", 14)
	require.NoError(t, err)
	assert.Equal(t, []uint{14}, repo.deleted)
}
