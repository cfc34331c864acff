package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("point transaction not found")

// breakdownLimit caps the per-member transaction breakdown.
const breakdownLimit = 20

type PointTransaction struct {
	ID             uint `gorm:"primaryKey"`
	OrganizationID uint `gorm:"not null;index:idx_points_member_org,priority:2"`
	MemberID       uint `gorm:"not null;index:idx_points_member_org,priority:1"`

	Event     string
	Points    float64 `gorm:"not null"`
	AwardedBy string

	Timestamp *time.Time `gorm:"index"`
}

func (PointTransaction) TableName() string {
	return "point_transactions"
}

type PointsDAO struct {
	db *gorm.DB
}

func NewPointsDAO(db *gorm.DB) *PointsDAO {
	return &PointsDAO{
		db: db,
	}
}

func (d *PointsDAO) Insert(ctx context.Context, transaction PointTransaction) (PointTransaction, error) {
	result := d.db.WithContext(ctx).Create(&transaction)
	if result.Error != nil {
		return PointTransaction{}, result.Error
	}

	return transaction, nil
}

// SumByMember computes the member's total in the database. Totals must
// never be folded in application memory; history can be large.
func (d *PointsDAO) SumByMember(ctx context.Context, memberID, orgID uint) (float64, error) {
	var total float64

	result := d.db.WithContext(ctx).
		Model(&PointTransaction{}).
		Where("member_id = ? AND organization_id = ?", memberID, orgID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

// FindRecentByMember returns at most breakdownLimit transactions, newest
// first. Null timestamps sort last; ties break on id.
func (d *PointsDAO) FindRecentByMember(ctx context.Context, memberID, orgID uint) ([]PointTransaction, error) {
	var transactions []PointTransaction

	result := d.db.WithContext(ctx).
		Where("member_id = ? AND organization_id = ?", memberID, orgID).
		Order("timestamp DESC NULLS LAST, id DESC").
		Limit(breakdownLimit).
		Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

type LeaderboardRow struct {
	MemberUUID  string
	Username    string
	Email       string
	TotalPoints float64
}

func (d *PointsDAO) Leaderboard(ctx context.Context, orgID uint) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow

	result := d.db.WithContext(ctx).
		Model(&PointTransaction{}).
		Select("members.uuid AS member_uuid, members.username, members.email, COALESCE(SUM(point_transactions.points), 0) AS total_points").
		Joins("JOIN members ON members.id = point_transactions.member_id").
		Where("point_transactions.organization_id = ?", orgID).
		Group("members.uuid, members.username, members.email").
		Order("total_points DESC, members.username ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// Delete removes a transaction. Admin action only; transactions are
// otherwise immutable.
func (d *PointsDAO) Delete(ctx context.Context, id, orgID uint) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		Delete(&PointTransaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}
