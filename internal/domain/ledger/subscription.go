package ledger

import (
	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/shared"
)

// Subscription follows an author. (FollowerID, AuthorID) is unique and a
// user can never follow themselves.
type Subscription struct {
	shared.BaseEntity
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_follower_author,priority:1"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_follower_author,priority:2"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a subscription relation
func NewSubscription(followerID, authorID uuid.UUID) (*Subscription, error) {
	if followerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Follower ID cannot be empty")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Author ID cannot be empty")
	}
	if followerID == authorID {
		return nil, shared.ErrSelfSubscription
	}

	return &Subscription{
		BaseEntity: shared.NewBaseEntity(),
		FollowerID: followerID,
		AuthorID:   authorID,
	}, nil
}
