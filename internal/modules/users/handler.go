package users

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	baseURL string
}

func NewHandler(service *Service, baseURL string) *Handler {
	return &Handler{service: service, baseURL: baseURL}
}

// RegisterRoutes mounts the user surface. public carries OptionalJWTAuth,
// protected carries JWTAuth.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/users/", h.ListUsers)
	public.GET("/users/:id/", h.GetUser)

	protected.GET("/users/me/", h.Me)
	protected.PUT("/users/me/avatar/", h.SetAvatar)
	protected.DELETE("/users/me/avatar/", h.DeleteAvatar)
	protected.GET("/users/subscriptions/", h.Subscriptions)
	protected.POST("/users/:id/subscribe/", h.Subscribe)
	protected.DELETE("/users/:id/subscribe/", h.Unsubscribe)
}

func (h *Handler) ListUsers(c *gin.Context) {
	p := pagination.FromRequest(c)
	viewerID := c.GetInt64("user_id")

	list, total, err := h.service.ListUsers(c.Request.Context(), viewerID, p.Limit, p.Offset())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, pagination.Paginate(h.listURL(c), c.Request.URL.Query(), p, total, list))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.GetUser(c.Request.Context(), userID, userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) SetAvatar(c *gin.Context) {
	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	url, err := h.service.SetAvatar(c.Request.Context(), c.GetInt64("user_id"), req.Avatar)
	if err != nil {
		if errors.Is(err, ErrEmptyAvatar) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid avatar",
				map[string]string{"avatar": "must not be empty"})
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not decode avatar image")
		return
	}

	c.JSON(http.StatusOK, AvatarResponse{Avatar: url})
}

func (h *Handler) DeleteAvatar(c *gin.Context) {
	if err := h.service.DeleteAvatar(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete avatar")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Subscribe(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	sub, err := h.service.Subscribe(
		c.Request.Context(),
		c.GetInt64("user_id"),
		targetID,
		recipesLimit(c),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, ErrAlreadySubscribed):
			response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", "Subscription already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to subscribe")
		}
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.service.Unsubscribe(c.Request.Context(), c.GetInt64("user_id"), targetID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, ErrNotSubscribed):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unsubscribe")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Subscriptions(c *gin.Context) {
	p := pagination.FromRequest(c)

	subs, total, err := h.service.Subscriptions(
		c.Request.Context(),
		c.GetInt64("user_id"),
		p.Limit, p.Offset(),
		recipesLimit(c),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, pagination.Paginate(h.listURL(c), c.Request.URL.Query(), p, total, subs))
}

func (h *Handler) listURL(c *gin.Context) string {
	return strings.TrimRight(h.baseURL, "/") + c.Request.URL.Path
}

func recipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
