package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

const refreshTokenTTL = 30 * 24 * time.Hour

var (
	ErrMemberEmailExists    = repository.ErrMemberEmailExists
	ErrMemberNotFound       = repository.ErrMemberNotFound
	ErrWrongPassword        = errors.New("wrong password")
	ErrInvalidRefreshToken  = repository.ErrRefreshTokenNotFound
	ErrPasswordLoginBlocked = errors.New("member has no password login")
)

type AuthMemberRepository interface {
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	GetByID(ctx context.Context, id uint) (domain.Member, error)
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	GetByExternalID(ctx context.Context, externalID string) (domain.Member, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token domain.RefreshToken) (domain.RefreshToken, error)
	Get(ctx context.Context, token string) (domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type AuthService struct {
	memberRepo AuthMemberRepository
	tokenRepo  RefreshTokenRepository
}

func NewAuthService(memberRepo AuthMemberRepository, tokenRepo RefreshTokenRepository) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		tokenRepo:  tokenRepo,
	}
}

func (s *AuthService) Signup(ctx context.Context, member domain.Member) (domain.Member, error) {
	if err := s.checkEmailExists(ctx, member.Email); err != nil {
		return domain.Member{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(member.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Member{}, err
	}
	member.Password = string(hash)
	member.UUID = uuid.NewString()

	created, err := s.memberRepo.Create(ctx, member)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.memberRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Member, error) {
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return domain.Member{}, ErrMemberNotFound
		}

		return domain.Member{}, fmt.Errorf("s.memberRepo.GetByEmail -> %w", err)
	}

	// IdP-only members have no local password to compare.
	if member.Password == "" {
		return domain.Member{}, ErrPasswordLoginBlocked
	}

	if err = bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return domain.Member{}, ErrWrongPassword
	}

	return member, nil
}

// IssueRefreshToken mints an opaque refresh token for the member.
func (s *AuthService) IssueRefreshToken(ctx context.Context, memberID uint) (domain.RefreshToken, error) {
	token, err := s.tokenRepo.Create(ctx, domain.RefreshToken{
		Token:     uuid.NewString(),
		MemberID:  memberID,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("s.tokenRepo.Create -> %w", err)
	}

	return token, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh one issued. A revoked or expired token fails with
// ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, token string) (domain.Member, domain.RefreshToken, error) {
	stored, err := s.tokenRepo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return domain.Member{}, domain.RefreshToken{}, ErrInvalidRefreshToken
		}

		return domain.Member{}, domain.RefreshToken{}, fmt.Errorf("s.tokenRepo.Get -> %w", err)
	}

	member, err := s.memberRepo.GetByID(ctx, stored.MemberID)
	if err != nil {
		return domain.Member{}, domain.RefreshToken{}, fmt.Errorf("s.memberRepo.GetByID -> %w", err)
	}

	if err = s.tokenRepo.Revoke(ctx, token); err != nil {
		return domain.Member{}, domain.RefreshToken{}, fmt.Errorf("s.tokenRepo.Revoke -> %w", err)
	}

	rotated, err := s.IssueRefreshToken(ctx, member.ID)
	if err != nil {
		return domain.Member{}, domain.RefreshToken{}, fmt.Errorf("s.IssueRefreshToken -> %w", err)
	}

	return member, rotated, nil
}

// ResolveExternalMember maps an identity-provider subject onto a member,
// provisioning one on first sight.
func (s *AuthService) ResolveExternalMember(ctx context.Context, externalID, email, name string) (domain.Member, error) {
	member, err := s.memberRepo.GetByExternalID(ctx, externalID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return domain.Member{}, fmt.Errorf("s.memberRepo.GetByExternalID -> %w", err)
	}

	created, err := s.memberRepo.Create(ctx, domain.Member{
		UUID:       uuid.NewString(),
		ExternalID: externalID,
		Email:      email,
		Name:       name,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMemberEmailExists) {
			// The email signed up locally first; link the identities.
			existing, findErr := s.memberRepo.GetByEmail(ctx, email)
			if findErr != nil {
				return domain.Member{}, fmt.Errorf("s.memberRepo.GetByEmail -> %w", findErr)
			}
			return existing, nil
		}

		return domain.Member{}, fmt.Errorf("s.memberRepo.Create -> %w", err)
	}

	return created, nil
}

// PurgeExpiredTokens is invoked by the background cleanup job.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	deleted, err := s.tokenRepo.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.tokenRepo.PurgeExpired -> %w", err)
	}

	return deleted, nil
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.memberRepo.GetByEmail(ctx, email)
	if err == nil {
		return ErrMemberEmailExists
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return err
	}

	return nil
}
