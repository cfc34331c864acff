package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOfficerNotFound      = errors.New("officer not found")
	ErrContributionNotFound = errors.New("contribution not found")
)

type Officer struct {
	UUID           string `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"not null;index"`

	Email      *string `gorm:"uniqueIndex"`
	Name       string  `gorm:"not null"`
	Title      string  `gorm:"not null;default:Unknown"`
	Department string  `gorm:"not null;default:Unknown"`
}

func (Officer) TableName() string {
	return "officers"
}

type OfficerContribution struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"not null;index"`
	OfficerUUID    string `gorm:"not null;index"`

	Event     string `gorm:"not null"`
	EventType string `gorm:"not null;default:Default"`
	Role      string `gorm:"not null;default:Custom"`

	BasePoints int             `gorm:"not null"`
	Weight     decimal.Decimal `gorm:"type:decimal(6,2);not null;default:1.00"`

	Timestamp    *time.Time `gorm:"index"`
	SourcePageID string     `gorm:"index"`
}

func (OfficerContribution) TableName() string {
	return "officer_contributions"
}

type ContributionDAO struct {
	db *gorm.DB
}

func NewContributionDAO(db *gorm.DB) *ContributionDAO {
	return &ContributionDAO{
		db: db,
	}
}

func (d *ContributionDAO) InsertOfficer(ctx context.Context, officer Officer) (Officer, error) {
	result := d.db.WithContext(ctx).Create(&officer)
	if result.Error != nil {
		return Officer{}, result.Error
	}

	return officer, nil
}

func (d *ContributionDAO) FindOfficerByUUID(ctx context.Context, uuid string) (Officer, error) {
	var officer Officer

	result := d.db.WithContext(ctx).First(&officer, "uuid = ?", uuid)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Officer{}, ErrOfficerNotFound
		}

		return Officer{}, result.Error
	}

	return officer, nil
}

// FindOfficerByName matches case-insensitively; sync feeds spell names
// inconsistently.
func (d *ContributionDAO) FindOfficerByName(ctx context.Context, orgID uint, name string) (Officer, error) {
	var officer Officer

	result := d.db.WithContext(ctx).
		First(&officer, "organization_id = ? AND LOWER(name) = LOWER(?)", orgID, name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Officer{}, ErrOfficerNotFound
		}

		return Officer{}, result.Error
	}

	return officer, nil
}

func (d *ContributionDAO) FindOfficerByEmail(ctx context.Context, orgID uint, email string) (Officer, error) {
	var officer Officer

	result := d.db.WithContext(ctx).
		First(&officer, "organization_id = ? AND email = ?", orgID, email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Officer{}, ErrOfficerNotFound
		}

		return Officer{}, result.Error
	}

	return officer, nil
}

// ListOfficers returns an organization's officers; orgID 0 means all.
func (d *ContributionDAO) ListOfficers(ctx context.Context, orgID uint) ([]Officer, error) {
	query := d.db.WithContext(ctx)
	if orgID != 0 {
		query = query.Where("organization_id = ?", orgID)
	}

	var officers []Officer
	result := query.Order("name").Find(&officers)
	if result.Error != nil {
		return nil, result.Error
	}

	return officers, nil
}

func (d *ContributionDAO) InsertContribution(ctx context.Context, contribution OfficerContribution) (OfficerContribution, error) {
	result := d.db.WithContext(ctx).Create(&contribution)
	if result.Error != nil {
		return OfficerContribution{}, result.Error
	}

	return contribution, nil
}

func (d *ContributionDAO) FindContributionByID(ctx context.Context, id uint) (OfficerContribution, error) {
	var contribution OfficerContribution

	result := d.db.WithContext(ctx).First(&contribution, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return OfficerContribution{}, ErrContributionNotFound
		}

		return OfficerContribution{}, result.Error
	}

	return contribution, nil
}

// ContributionExists reports whether a record for the same officer, event
// and role already exists. Sync and manual entry both dedupe on this.
func (d *ContributionDAO) ContributionExists(ctx context.Context, orgID uint, officerUUID, event, role string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&OfficerContribution{}).
		Where("organization_id = ? AND officer_uuid = ? AND event = ? AND role = ?", orgID, officerUUID, event, role).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *ContributionDAO) ContributionExistsBySource(ctx context.Context, orgID uint, officerUUID, sourcePageID, role string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&OfficerContribution{}).
		Where("organization_id = ? AND officer_uuid = ? AND source_page_id = ? AND role = ?", orgID, officerUUID, sourcePageID, role).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// UpdateWeight changes the single mutable column of a contribution.
func (d *ContributionDAO) UpdateWeight(ctx context.Context, id uint, weight decimal.Decimal) error {
	result := d.db.WithContext(ctx).
		Model(&OfficerContribution{}).
		Where("id = ?", id).
		Update("weight", weight)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContributionNotFound
	}

	return nil
}

func (d *ContributionDAO) DeleteContribution(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&OfficerContribution{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContributionNotFound
	}

	return nil
}

// FindContributionsByOfficer lists an officer's contributions, optionally
// bounded by an inclusive date range.
func (d *ContributionDAO) FindContributionsByOfficer(ctx context.Context, officerUUID string, start, end *time.Time) ([]OfficerContribution, error) {
	query := d.db.WithContext(ctx).Where("officer_uuid = ?", officerUUID)
	if start != nil {
		query = query.Where("timestamp >= ?", *start)
	}
	if end != nil {
		query = query.Where("timestamp <= ?", *end)
	}

	var contributions []OfficerContribution
	result := query.Order("timestamp DESC NULLS LAST, id DESC").Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}

	return contributions, nil
}
