package repository

import (
	"context"
	"fmt"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository/dao"
)

var ErrRefreshTokenNotFound = dao.ErrRefreshTokenNotFound

type TokenDAO interface {
	Insert(ctx context.Context, token dao.RefreshToken) (dao.RefreshToken, error)
	Find(ctx context.Context, token string) (dao.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type TokenRepository struct {
	dao TokenDAO
}

func NewTokenRepository(dao TokenDAO) *TokenRepository {
	return &TokenRepository{
		dao: dao,
	}
}

func (r *TokenRepository) daoToDomain(t dao.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		ID:        t.ID,
		Token:     t.Token,
		MemberID:  t.MemberID,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
		CreatedAt: t.CreatedAt,
	}
}

func (r *TokenRepository) Create(ctx context.Context, token domain.RefreshToken) (domain.RefreshToken, error) {
	created, err := r.dao.Insert(ctx, dao.RefreshToken{
		Token:     token.Token,
		MemberID:  token.MemberID,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// Get returns a live token; revoked and expired tokens surface as
// ErrRefreshTokenNotFound.
func (r *TokenRepository) Get(ctx context.Context, token string) (domain.RefreshToken, error) {
	found, err := r.dao.Find(ctx, token)
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	if err := r.dao.Revoke(ctx, token); err != nil {
		return fmt.Errorf("r.dao.Revoke -> %w", err)
	}

	return nil
}

func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := r.dao.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteExpired -> %w", err)
	}

	return deleted, nil
}
