package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/recipebox/backend/internal/application/identity"
	appledger "github.com/recipebox/backend/internal/application/ledger"
	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/interfaces/http/dto"
)

// UserHandler handles user profile and subscription HTTP requests
type UserHandler struct {
	BaseHandler
	userService         *appidentity.UserService
	subscriptionService *appledger.SubscriptionService
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userService *appidentity.UserService,
	subscriptionService *appledger.SubscriptionService,
) *UserHandler {
	return &UserHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
	}
}

// List godoc
// @Summary      List users
// @Description  List user profiles with pagination and optional keyword search
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search keyword"
// @Success      200 {object} dto.Response{data=[]UserProfileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := identity.NewUserFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Search != "" {
		filter = filter.WithKeyword(req.Search)
	}

	result, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	viewerID := getOptionalUserID(c)
	profiles := make([]UserProfileResponse, 0, len(result.Users))
	for i := range result.Users {
		subscribed, err := h.subscriptionService.IsSubscribed(c.Request.Context(), viewerID, result.Users[i].ID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		profiles = append(profiles, toUserProfileResponse(&result.Users[i], subscribed))
	}

	h.SuccessWithMeta(c, profiles, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get user profile
// @Description  Get a user's public profile by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=UserProfileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	viewerID := getOptionalUserID(c)
	subscribed, err := h.subscriptionService.IsSubscribed(c.Request.Context(), viewerID, user.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserProfileResponse(user, subscribed))
}

// SetAvatar godoc
// @Summary      Set avatar
// @Description  Set the current user's avatar from a base64 data URL
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body SetAvatarRequest true "Avatar image"
// @Success      200 {object} dto.Response{data=AvatarResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/avatar [put]
func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	data, contentType, err := decodeBase64Image(req.Avatar)
	if err != nil {
		if errors.Is(err, errInvalidImageData) {
			h.BadRequest(c, "Avatar must be a base64 image data URL")
			return
		}
		h.BadRequest(c, "Invalid avatar image data")
		return
	}

	user, err := h.userService.SetAvatar(c.Request.Context(), appidentity.SetAvatarInput{
		UserID:      userID,
		Data:        data,
		ContentType: contentType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AvatarResponse{Avatar: user.Avatar})
}

// DeleteAvatar godoc
// @Summary      Delete avatar
// @Description  Remove the current user's avatar
// @Tags         users
// @Produce      json
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/avatar [delete]
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.userService.RemoveAvatar(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetSubscriptions godoc
// @Summary      List subscriptions
// @Description  List the authors the current user follows, each with a recipe preview
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        recipes_limit query int false "Max recipes embedded per author"
// @Success      200 {object} dto.Response{data=[]appledger.SubscribedAuthorDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/subscriptions [get]
func (h *UserHandler) GetSubscriptions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ListSubscriptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.subscriptionService.List(c.Request.Context(), appledger.ListSubscriptionsInput{
		FollowerID:   userID,
		Page:         req.Page,
		PageSize:     req.PageSize,
		RecipesLimit: req.RecipesLimit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Authors, result.Total, result.Page, result.PageSize)
}

// Subscribe godoc
// @Summary      Subscribe to author
// @Description  Follow an author to see their recipes in subscriptions
// @Tags         users
// @Produce      json
// @Param        id path string true "Author ID"
// @Success      201 {object} dto.Response{data=appledger.SubscribedAuthorDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/subscribe [post]
func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid author ID")
		return
	}

	author, err := h.subscriptionService.Subscribe(c.Request.Context(), userID, uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, author)
}

// Unsubscribe godoc
// @Summary      Unsubscribe from author
// @Description  Stop following an author
// @Tags         users
// @Produce      json
// @Param        id path string true "Author ID"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/subscribe [delete]
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid author ID")
		return
	}

	if err := h.subscriptionService.Unsubscribe(c.Request.Context(), userID, uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
