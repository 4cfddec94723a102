package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/infrastructure/storage"
)

// UserService handles user profile operations
type UserService struct {
	userRepo identity.UserRepository
	storage  storage.ObjectStorage
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	objectStorage storage.ObjectStorage,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		storage:  objectStorage,
		logger:   logger,
	}
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Avatar      string     `json:"avatar,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserListResult represents paginated user list result
type UserListResult struct {
	Users      []UserDTO `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// SetAvatarInput contains input for setting a user's avatar.
// Data is the decoded image payload; ContentType selects the stored
// file extension.
type SetAvatarInput struct {
	UserID      uuid.UUID
	Data        []byte
	ContentType string
}

// GetByID returns a user's profile
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// List returns users matching the filter with pagination
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*UserListResult, error) {
	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toUserDTO(user))
	}

	pageSize := filter.Limit()
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &UserListResult{
		Users:      dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SetAvatar stores the avatar image and updates the user's profile.
// Re-uploading replaces the previous image under the same storage key.
func (s *UserService) SetAvatar(ctx context.Context, input SetAvatarInput) (*UserDTO, error) {
	if len(input.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_AVATAR", "Avatar image data cannot be empty")
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	key := avatarStorageKey(user.ID, input.ContentType)
	if err := s.storage.Upload(ctx, key, input.Data, input.ContentType); err != nil {
		s.logger.Error("Failed to upload avatar",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store avatar image")
	}

	if err := user.SetAvatar(s.storage.URL(key)); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user avatar", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update avatar")
	}

	s.logger.Info("User avatar updated",
		zap.String("user_id", user.ID.String()),
		zap.String("storage_key", key))

	dto := toUserDTO(user)
	return &dto, nil
}

// RemoveAvatar clears the user's avatar and deletes the stored image
func (s *UserService) RemoveAvatar(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if user.Avatar == "" {
		return nil
	}

	for _, ext := range avatarExtensions {
		key := fmt.Sprintf("avatars/%s.%s", user.ID, ext)
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to delete avatar object",
				zap.String("storage_key", key),
				zap.Error(err))
		}
	}

	user.RemoveAvatar()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to clear user avatar", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove avatar")
	}

	s.logger.Info("User avatar removed", zap.String("user_id", user.ID.String()))

	return nil
}

var avatarExtensions = []string{"png", "jpg", "gif", "webp"}

func avatarStorageKey(userID uuid.UUID, contentType string) string {
	return fmt.Sprintf("avatars/%s.%s", userID, imageExtension(contentType))
}

func imageExtension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}

func toUserDTO(user *identity.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Avatar:      user.Avatar,
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
