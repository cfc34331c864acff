package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file run against a real postgres container so the SQL
// the DAO leans on (aggregate sums, ordering, the breakdown cap) is
// exercised where it actually lives.

func tsp(t time.Time) *time.Time {
	return &t
}

func TestFindRecentByMember(t *testing.T) {
	db := requireDB(t)
	dao := NewPointsDAO(db)
	ctx := context.Background()

	t.Run("caps the breakdown at the newest twenty", func(t *testing.T) {
		const orgID, memberID = 9001, 1

		base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 25; i++ {
			_, err := dao.Insert(ctx, PointTransaction{
				OrganizationID: orgID,
				MemberID:       memberID,
				Event:          "weekly meeting",
				Points:         1,
				Timestamp:      tsp(base.Add(time.Duration(i) * time.Minute)),
			})
			require.NoError(t, err)
		}
		// An undated award sorts after every dated one.
		_, err := dao.Insert(ctx, PointTransaction{
			OrganizationID: orgID,
			MemberID:       memberID,
			Event:          "legacy import",
			Points:         1,
		})
		require.NoError(t, err)

		transactions, err := dao.FindRecentByMember(ctx, memberID, orgID)
		require.NoError(t, err)
		require.Len(t, transactions, 20)

		for i, transaction := range transactions {
			require.NotNil(t, transaction.Timestamp, "undated rows must not enter a full breakdown")
			want := base.Add(time.Duration(24-i) * time.Minute)
			assert.True(t, transaction.Timestamp.Equal(want), "breakdown must be newest first")
		}
	})

	t.Run("equal timestamps break on id descending", func(t *testing.T) {
		const orgID, memberID = 9002, 1

		when := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
		first, err := dao.Insert(ctx, PointTransaction{
			OrganizationID: orgID, MemberID: memberID, Points: 1, Timestamp: tsp(when),
		})
		require.NoError(t, err)
		second, err := dao.Insert(ctx, PointTransaction{
			OrganizationID: orgID, MemberID: memberID, Points: 2, Timestamp: tsp(when),
		})
		require.NoError(t, err)

		transactions, err := dao.FindRecentByMember(ctx, memberID, orgID)
		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, second.ID, transactions[0].ID)
		assert.Equal(t, first.ID, transactions[1].ID)
	})
}

func TestSumByMember(t *testing.T) {
	db := requireDB(t)
	dao := NewPointsDAO(db)
	ctx := context.Background()

	const orgID = 9003

	seed := []PointTransaction{
		{OrganizationID: orgID, MemberID: 1, Points: 10},
		{OrganizationID: orgID, MemberID: 1, Points: -2.5},
		{OrganizationID: orgID, MemberID: 1, Points: 0.5},
		{OrganizationID: orgID, MemberID: 2, Points: 100},
		{OrganizationID: orgID + 1, MemberID: 1, Points: 100},
	}
	for _, transaction := range seed {
		_, err := dao.Insert(ctx, transaction)
		require.NoError(t, err)
	}

	t.Run("sums in the database including negative awards", func(t *testing.T) {
		total, err := dao.SumByMember(ctx, 1, orgID)
		require.NoError(t, err)
		assert.InDelta(t, 8.0, total, 1e-9)
	})

	t.Run("other members and organizations stay excluded", func(t *testing.T) {
		total, err := dao.SumByMember(ctx, 2, orgID)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, total, 1e-9)
	})

	t.Run("no history is zero", func(t *testing.T) {
		total, err := dao.SumByMember(ctx, 99, orgID)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestLeaderboard(t *testing.T) {
	db := requireDB(t)
	dao := NewPointsDAO(db)
	ctx := context.Background()

	const orgID = 9004

	members := []Member{
		{UUID: "lb-mem-1", Email: "blake@example.com", Username: "blake"},
		{UUID: "lb-mem-2", Email: "alex@example.com", Username: "alex"},
		{UUID: "lb-mem-3", Email: "casey@example.com", Username: "casey"},
	}
	for i := range members {
		require.NoError(t, db.Create(&members[i]).Error)
	}

	seed := []PointTransaction{
		{OrganizationID: orgID, MemberID: members[0].ID, Points: 6},
		{OrganizationID: orgID, MemberID: members[0].ID, Points: 4},
		{OrganizationID: orgID, MemberID: members[1].ID, Points: 10},
		{OrganizationID: orgID, MemberID: members[2].ID, Points: 15},
	}
	for _, transaction := range seed {
		_, err := dao.Insert(ctx, transaction)
		require.NoError(t, err)
	}

	rows, err := dao.Leaderboard(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "casey", rows[0].Username)
	assert.InDelta(t, 15.0, rows[0].TotalPoints, 1e-9)

	// blake and alex are tied at ten; the tie breaks on username.
	assert.Equal(t, "alex", rows[1].Username)
	assert.Equal(t, "blake", rows[2].Username)
}
