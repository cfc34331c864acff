package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrOrgNotFound     = errors.New("organization not found")
	ErrOrgPrefixExists = errors.New("organization prefix already exists")
)

type Organization struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Prefix      string `gorm:"uniqueIndex;not null"`
	Description string

	IsActive       bool `gorm:"default:true"`
	PointsPerEvent int  `gorm:"default:1"`

	CalendarSyncEnabled bool `gorm:"default:false"`
	CalendarSourceID    string
	LastSyncAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrganizationDAO struct {
	db *gorm.DB
}

func NewOrganizationDAO(db *gorm.DB) *OrganizationDAO {
	return &OrganizationDAO{
		db: db,
	}
}

func (d *OrganizationDAO) Insert(ctx context.Context, org Organization) (Organization, error) {
	result := d.db.WithContext(ctx).Create(&org)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Organization{}, ErrOrgPrefixExists
		}

		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) FindByID(ctx context.Context, id uint) (Organization, error) {
	var org Organization

	result := d.db.WithContext(ctx).First(&org, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Organization{}, ErrOrgNotFound
		}

		return Organization{}, result.Error
	}

	return org, nil
}

// FindByPrefix resolves an active organization by its route prefix.
func (d *OrganizationDAO) FindByPrefix(ctx context.Context, prefix string) (Organization, error) {
	var org Organization

	result := d.db.WithContext(ctx).First(&org, "prefix = ? AND is_active = ?", prefix, true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Organization{}, ErrOrgNotFound
		}

		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) List(ctx context.Context) ([]Organization, error) {
	var orgs []Organization

	result := d.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&orgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return orgs, nil
}

func (d *OrganizationDAO) Update(ctx context.Context, org Organization) (Organization, error) {
	result := d.db.WithContext(ctx).Save(&org)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Organization{}, ErrOrgPrefixExists
		}

		return Organization{}, result.Error
	}

	return org, nil
}

// Deactivate soft-deletes; rows scoped to the organization are kept.
func (d *OrganizationDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Organization{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrgNotFound
	}

	return nil
}

func (d *OrganizationDAO) FindSyncEnabled(ctx context.Context) ([]Organization, error) {
	var orgs []Organization

	result := d.db.WithContext(ctx).
		Where("is_active = ? AND calendar_sync_enabled = ? AND calendar_source_id <> ''", true, true).
		Find(&orgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return orgs, nil
}

func (d *OrganizationDAO) UpdateLastSyncAt(ctx context.Context, id uint, at time.Time) error {
	return d.db.WithContext(ctx).Model(&Organization{}).Where("id = ?", id).Update("last_sync_at", at).Error
}
