package models

import (
	"time"

	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email          string              `gorm:"type:varchar(254);not null;uniqueIndex"`
	Username       string              `gorm:"type:varchar(150);not null;uniqueIndex"`
	FirstName      string              `gorm:"type:varchar(150)"`
	LastName       string              `gorm:"type:varchar(150)"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	Avatar         string              `gorm:"type:varchar(500)"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time          `gorm:"index"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Email:          m.Email,
		Username:       m.Username,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		PasswordHash:   m.PasswordHash,
		Avatar:         m.Avatar,
		Status:         m.Status,
		LastLoginAt:    m.LastLoginAt,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.Username = u.Username
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.PasswordHash = u.PasswordHash
	m.Avatar = u.Avatar
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
