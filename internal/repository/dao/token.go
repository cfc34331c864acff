package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshToken struct {
	ID       uint   `gorm:"primaryKey"`
	Token    string `gorm:"uniqueIndex;not null"`
	MemberID uint   `gorm:"not null;index"`

	ExpiresAt time.Time `gorm:"not null;index"`
	Revoked   bool      `gorm:"default:false"`

	CreatedAt time.Time
}

type TokenDAO struct {
	db *gorm.DB
}

func NewTokenDAO(db *gorm.DB) *TokenDAO {
	return &TokenDAO{
		db: db,
	}
}

func (d *TokenDAO) Insert(ctx context.Context, token RefreshToken) (RefreshToken, error) {
	result := d.db.WithContext(ctx).Create(&token)
	if result.Error != nil {
		return RefreshToken{}, result.Error
	}

	return token, nil
}

// Find returns a live (unrevoked, unexpired) refresh token.
func (d *TokenDAO) Find(ctx context.Context, token string) (RefreshToken, error) {
	var found RefreshToken

	result := d.db.WithContext(ctx).
		First(&found, "token = ? AND revoked = ? AND expires_at > ?", token, false, time.Now())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RefreshToken{}, ErrRefreshTokenNotFound
		}

		return RefreshToken{}, result.Error
	}

	return found, nil
}

func (d *TokenDAO) Revoke(ctx context.Context, token string) error {
	result := d.db.WithContext(ctx).
		Model(&RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}

	return nil
}

// DeleteExpired prunes expired and revoked tokens; run by the cleanup job.
func (d *TokenDAO) DeleteExpired(ctx context.Context) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("expires_at < ? OR revoked = ?", time.Now(), true).
		Delete(&RefreshToken{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
