package recipes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"foodgram/internal/domain"
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

// RegisterRoutes mounts the recipe surface. public carries
// OptionalJWTAuth, protected carries JWTAuth.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/recipes/", h.List)
	public.GET("/recipes/:id/", h.Get)
	public.GET("/recipes/:id/get-link/", h.GetLink)

	protected.POST("/recipes/", h.Create)
	protected.PATCH("/recipes/:id/", h.Update)
	protected.DELETE("/recipes/:id/", h.Delete)
	protected.GET("/recipes/download_shopping_cart/", h.DownloadShoppingCart)
	protected.POST("/recipes/:id/favorite/", h.AddFavorite)
	protected.DELETE("/recipes/:id/favorite/", h.RemoveFavorite)
	protected.POST("/recipes/:id/shopping_cart/", h.AddToCart)
	protected.DELETE("/recipes/:id/shopping_cart/", h.RemoveFromCart)
}

// RegisterShortLinkRoutes mounts the public short-link resolver outside
// the /api group.
func (h *Handler) RegisterShortLinkRoutes(r *gin.Engine) {
	r.GET("/s/:shortLink", h.ResolveShortLink)
	r.GET("/s/:shortLink/", h.ResolveShortLink)
}

func (h *Handler) List(c *gin.Context) {
	p := pagination.FromRequest(c)

	var filter ListFilter
	if raw := c.Query("author"); raw != "" {
		filter.AuthorID, _ = strconv.ParseInt(raw, 10, 64)
	}
	filter.TagSlugs = c.QueryArray("tags")
	filter.IsFavorited = boolFlag(c.Query("is_favorited"))
	filter.IsInCart = boolFlag(c.Query("is_in_shopping_cart"))

	list, total, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), filter, p.Limit, p.Offset())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list recipes")
		return
	}

	c.JSON(http.StatusOK, pagination.Paginate(h.listURL(c), c.Request.URL.Query(), p, total, list))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	recipe, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to get recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) Create(c *gin.Context) {
	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	recipe, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create recipe")
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	recipe, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), isAdmin(c), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), isAdmin(c), id); err != nil {
		h.writeError(c, err, "Failed to delete recipe")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetLink(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	link, err := h.service.GetLink(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to build short link")
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *Handler) ResolveShortLink(c *gin.Context) {
	token := c.Param("shortLink")

	recipeID, err := h.service.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrShortLinkNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Short link not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve short link")
		return
	}

	c.Redirect(http.StatusFound,
		fmt.Sprintf("%s/api/recipes/%d/", strings.TrimRight(h.baseURL, "/"), recipeID))
}

func (h *Handler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.service.AddFavorite, "Failed to add to favorites")
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.service.RemoveFavorite, "Failed to remove from favorites")
}

func (h *Handler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.service.AddToCart, "Failed to add to shopping cart")
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.service.RemoveFromCart, "Failed to remove from shopping cart")
}

func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	report, err := h.service.DownloadShoppingCart(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="products_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (h *Handler) addRelation(c *gin.Context, add func(ctx context.Context, userID, recipeID int64) (*ShortResponse, error), fallback string) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	short, err := add(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err, fallback)
		return
	}
	c.JSON(http.StatusCreated, short)
}

func (h *Handler) removeRelation(c *gin.Context, remove func(ctx context.Context, userID, recipeID int64) error, fallback string) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := remove(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err, fallback)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	if ve, ok := AsValidationError(err); ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid recipe payload", ve.Fields)
		return
	}

	switch {
	case errors.Is(err, ErrRecipeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the author may modify this recipe")
	case errors.Is(err, ErrAlreadyFavorited), errors.Is(err, ErrAlreadyInCart):
		response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, ErrNotFavorited), errors.Is(err, ErrNotInCart):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func (h *Handler) listURL(c *gin.Context) string {
	return strings.TrimRight(h.baseURL, "/") + c.Request.URL.Path
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe id")
		return 0, false
	}
	return id, true
}

func boolFlag(raw string) bool {
	return raw == "1" || strings.EqualFold(raw, "true")
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("role") == string(domain.RoleAdmin)
}
