package handler

import (
	"github.com/google/uuid"

	"github.com/recipebox/backend/internal/application/identity"
)

// =====================
// User Request DTOs
// =====================

// SetAvatarRequest carries the avatar image as a base64 data URL
// ("data:image/png;base64,...")
type SetAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// ListUsersRequest contains query parameters for user listing
type ListUsersRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=200"`
}

// ListSubscriptionsRequest contains query parameters for the
// subscription listing
type ListSubscriptionsRequest struct {
	Page         int `form:"page" binding:"omitempty,min=1"`
	PageSize     int `form:"page_size" binding:"omitempty,min=1,max=100"`
	RecipesLimit int `form:"recipes_limit" binding:"omitempty,min=1,max=100"`
}

// =====================
// User Response DTOs
// =====================

// UserProfileResponse represents a user profile with the viewer's
// subscription flag
type UserProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Avatar       string    `json:"avatar,omitempty"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// AvatarResponse represents the stored avatar URL
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

func toUserProfileResponse(u *identity.UserDTO, isSubscribed bool) UserProfileResponse {
	return UserProfileResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.Avatar,
		IsSubscribed: isSubscribed,
	}
}
