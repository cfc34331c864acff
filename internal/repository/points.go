package repository

import (
	"context"
	"fmt"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository/dao"
)

var ErrTransactionNotFound = dao.ErrTransactionNotFound

type PointsDAO interface {
	Insert(ctx context.Context, transaction dao.PointTransaction) (dao.PointTransaction, error)
	SumByMember(ctx context.Context, memberID, orgID uint) (float64, error)
	FindRecentByMember(ctx context.Context, memberID, orgID uint) ([]dao.PointTransaction, error)
	Leaderboard(ctx context.Context, orgID uint) ([]dao.LeaderboardRow, error)
	Delete(ctx context.Context, id, orgID uint) error
}

type PointsRepository struct {
	dao PointsDAO
}

func NewPointsRepository(dao PointsDAO) *PointsRepository {
	return &PointsRepository{
		dao: dao,
	}
}

func (r *PointsRepository) domainToDao(t domain.PointTransaction) dao.PointTransaction {
	return dao.PointTransaction{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		MemberID:       t.MemberID,
		Event:          t.Event,
		Points:         t.Points,
		AwardedBy:      t.AwardedBy,
		Timestamp:      t.Timestamp,
	}
}

func (r *PointsRepository) daoToDomain(t dao.PointTransaction) domain.PointTransaction {
	return domain.PointTransaction{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		MemberID:       t.MemberID,
		Event:          t.Event,
		Points:         t.Points,
		AwardedBy:      t.AwardedBy,
		Timestamp:      t.Timestamp,
	}
}

func (r *PointsRepository) Create(ctx context.Context, transaction domain.PointTransaction) (domain.PointTransaction, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(transaction))
	if err != nil {
		return domain.PointTransaction{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// SumForMember delegates the total to the database; it is never computed
// by walking rows in memory.
func (r *PointsRepository) SumForMember(ctx context.Context, memberID, orgID uint) (float64, error) {
	total, err := r.dao.SumByMember(ctx, memberID, orgID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumByMember -> %w", err)
	}

	return total, nil
}

func (r *PointsRepository) RecentForMember(ctx context.Context, memberID, orgID uint) ([]domain.PointTransaction, error) {
	transactionDAOs, err := r.dao.FindRecentByMember(ctx, memberID, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecentByMember -> %w", err)
	}

	transactions := make([]domain.PointTransaction, len(transactionDAOs))
	for i, t := range transactionDAOs {
		transactions[i] = r.daoToDomain(t)
	}

	return transactions, nil
}

func (r *PointsRepository) Leaderboard(ctx context.Context, orgID uint) ([]domain.LeaderboardEntry, error) {
	rows, err := r.dao.Leaderboard(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Leaderboard -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			MemberUUID:  row.MemberUUID,
			Username:    row.Username,
			Email:       row.Email,
			TotalPoints: row.TotalPoints,
		}
	}

	return entries, nil
}

func (r *PointsRepository) Delete(ctx context.Context, id, orgID uint) error {
	if err := r.dao.Delete(ctx, id, orgID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
