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
	ErrMemberEmailExists = errors.New("member already exists")
	ErrMemberNotFound    = errors.New("member not found")
	ErrNotMember         = errors.New("not a member of this organization")
)

type Member struct {
	ID   uint   `gorm:"primaryKey"`
	UUID string `gorm:"uniqueIndex;not null"`

	ExternalID string `gorm:"index"`
	Email      string `gorm:"uniqueIndex;not null"`
	Username   string `gorm:"index"`
	Name       string
	Password   string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Membership struct {
	ID             uint `gorm:"primaryKey"`
	MemberID       uint `gorm:"not null;uniqueIndex:idx_member_org"`
	OrganizationID uint `gorm:"not null;uniqueIndex:idx_member_org"`
	IsActive       bool `gorm:"default:true"`
	JoinedAt       time.Time
}

type MemberDAO struct {
	db *gorm.DB
}

func NewMemberDAO(db *gorm.DB) *MemberDAO {
	return &MemberDAO{
		db: db,
	}
}

func (d *MemberDAO) Insert(ctx context.Context, member Member) (Member, error) {
	result := d.db.WithContext(ctx).Create(&member)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Member{}, ErrMemberEmailExists
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByID(ctx context.Context, id uint) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByUUID(ctx context.Context, uuid string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "uuid = ?", uuid)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByEmail(ctx context.Context, email string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) FindByExternalID(ctx context.Context, externalID string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).First(&member, "external_id = ?", externalID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

// FindByIdentifier matches email, UUID or username, in that order of intent.
func (d *MemberDAO) FindByIdentifier(ctx context.Context, identifier string) (Member, error) {
	var member Member

	result := d.db.WithContext(ctx).
		First(&member, "email = ? OR uuid = ? OR username = ?", identifier, identifier, identifier)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Member{}, ErrMemberNotFound
		}

		return Member{}, result.Error
	}

	return member, nil
}

func (d *MemberDAO) InsertMembership(ctx context.Context, membership Membership) (Membership, error) {
	result := d.db.WithContext(ctx).Create(&membership)
	if result.Error != nil {
		return Membership{}, result.Error
	}

	return membership, nil
}

// FindMembership returns the active membership or ErrNotMember.
func (d *MemberDAO) FindMembership(ctx context.Context, memberID, orgID uint) (Membership, error) {
	var membership Membership

	result := d.db.WithContext(ctx).
		First(&membership, "member_id = ? AND organization_id = ? AND is_active = ?", memberID, orgID, true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Membership{}, ErrNotMember
		}

		return Membership{}, result.Error
	}

	return membership, nil
}

func (d *MemberDAO) FindMembersByOrg(ctx context.Context, orgID uint) ([]Member, error) {
	var members []Member

	result := d.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.member_id = members.id").
		Where("memberships.organization_id = ? AND memberships.is_active = ?", orgID, true).
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}
