package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	itemservice "github.com/HaruSatoru/shareit/internal/services/item"
)

type ItemService interface {
	Create(ctx context.Context, ownerID int64, req itemservice.CreateRequest) (models.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req itemservice.UpdateRequest) (models.Item, error)
	Item(ctx context.Context, itemID, callerID int64) (models.ItemWithBookings, error)
	OwnersItems(ctx context.Context, ownerID int64) ([]models.ItemWithBookings, error)
	Search(ctx context.Context, text string) ([]models.Item, error)
	PostComment(ctx context.Context, itemID, authorID int64, text string) (models.Comment, error)
}

type itemHandler struct {
	log   *slog.Logger
	items ItemService
}

func (h *itemHandler) create(c *gin.Context) {
	var req newItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ownerID := callerID(c)

	item, err := h.items.Create(c.Request.Context(), ownerID, itemservice.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	})
	if err != nil {
		if errors.Is(err, itemservice.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrUserNotFoundFmt, ownerID)})
			return
		}

		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *itemHandler) update(c *gin.Context) {
	itemID, ok := pathID(c, "itemId", ErrInvalidItemID)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	item, err := h.items.Update(c.Request.Context(), callerID(c), itemID, itemservice.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		if errors.Is(err, itemservice.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrItemNotFoundFmt, itemID)})
			return
		}

		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *itemHandler) retrieve(c *gin.Context) {
	itemID, ok := pathID(c, "itemId", ErrInvalidItemID)
	if !ok {
		return
	}

	userID := callerID(c)

	item, err := h.items.Item(c.Request.Context(), itemID, userID)
	if err != nil {
		switch {
		case errors.Is(err, itemservice.ErrUserNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrUserNotFoundFmt, userID)})
		case errors.Is(err, itemservice.ErrItemNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrItemNotFoundFmt, itemID)})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		}
		return
	}

	c.JSON(http.StatusOK, toItemWithBookingsResponse(item))
}

func (h *itemHandler) listByOwner(c *gin.Context) {
	items, err := h.items.OwnersItems(c.Request.Context(), callerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusOK, toItemWithBookingsResponses(items))
}

func (h *itemHandler) search(c *gin.Context) {
	items, err := h.items.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusOK, toItemResponses(items))
}

func (h *itemHandler) postComment(c *gin.Context) {
	itemID, ok := pathID(c, "itemId", ErrInvalidItemID)
	if !ok {
		return
	}

	var req newCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	authorID := callerID(c)

	comment, err := h.items.PostComment(c.Request.Context(), itemID, authorID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, itemservice.ErrItemNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrItemNotFoundFmt, itemID)})
		case errors.Is(err, itemservice.ErrCommentNotAllowed):
			c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: fmt.Sprintf(ErrCommentNotAllowedFmt, authorID, itemID)})
		case errors.Is(err, itemservice.ErrDuplicateComment):
			c.JSON(http.StatusConflict, errorResponse{Error: fmt.Sprintf(ErrCommentTwiceFmt, authorID, itemID)})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		}
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}
