package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// BooksHandler serves the catalog book endpoints.
type BooksHandler struct {
	svc      service.BookService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewBooksHandler(svc service.BookService, rdb *redis.Client, cacheTTL time.Duration) *BooksHandler {
	return &BooksHandler{svc: svc, rdb: rdb, cacheTTL: cacheTTL}
}

// Create godoc
// @Summary Create a catalog book
// @Tags books
// @Accept json
// @Produce json
// @Param request body dto.CreateBookRequest true "Book"
// @Success 201 {object} dto.BookResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/books [post]
func (h *BooksHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List catalog books
// @Tags books
// @Produce json
// @Success 200 {object} dto.BookListResponse
// @Router /v1/books [get]
func (h *BooksHandler) List(c *gin.Context) {
	var filter dto.BookFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BooksHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BooksHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	var req dto.UpdateBookRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	// The stored price may have changed, drop any cached resolutions.
	h.invalidatePriceCache(c.Request.Context(), id)
	c.JSON(http.StatusOK, resp)
}

func (h *BooksHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.invalidatePriceCache(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

// GetPrice godoc
// @Summary Resolve the effective price of a book, optionally for a class
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Param class query string false "Class name, required for per-class priced books"
// @Success 200 {object} dto.ResolvedPriceResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/books/{id}/price [get]
func (h *BooksHandler) GetPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	className := c.Query("class")
	ctx := c.Request.Context()
	cacheKey := priceCacheKey(id, className)

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ResolvedPriceResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.ResolvePrice(ctx, id, className)
	if err != nil {
		respondError(c, err)
		return
	}

	// Populate the cache best effort, a miss only costs one DB round trip.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, h.cacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

func priceCacheKey(id uuid.UUID, className string) string {
	return "price:" + id.String() + ":" + className
}

// invalidatePriceCache removes every cached price resolution for the book.
// Per-class books cache one key per class name, so match on the prefix.
func (h *BooksHandler) invalidatePriceCache(ctx context.Context, id uuid.UUID) {
	iter := h.rdb.Scan(ctx, 0, "price:"+id.String()+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := h.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("key", iter.Val()).Msg("price cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("price cache scan failed")
	}
}
