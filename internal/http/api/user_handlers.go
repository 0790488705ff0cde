package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	userservice "github.com/HaruSatoru/shareit/internal/services/user"
)

type UserService interface {
	Create(ctx context.Context, name, email string) (models.User, error)
	User(ctx context.Context, userID int64) (models.User, error)
	Users(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, userID int64, req userservice.UpdateRequest) (models.User, error)
	Delete(ctx context.Context, userID int64) error
}

type userHandler struct {
	log   *slog.Logger
	users UserService
}

func (h *userHandler) create(c *gin.Context) {
	var req newUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, userservice.ErrEmailTaken) {
			c.JSON(http.StatusConflict, errorResponse{Error: fmt.Sprintf(ErrEmailTakenFmt, req.Email)})
			return
		}

		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *userHandler) retrieve(c *gin.Context) {
	userID, ok := pathID(c, "userId", ErrInvalidUserID)
	if !ok {
		return
	}

	user, err := h.users.User(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrUserNotFoundFmt, userID)})
			return
		}

		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *userHandler) list(c *gin.Context) {
	users, err := h.users.Users(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *userHandler) update(c *gin.Context) {
	userID, ok := pathID(c, "userId", ErrInvalidUserID)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), userID, userservice.UpdateRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrUserNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrUserNotFoundFmt, userID)})
		case errors.Is(err, userservice.ErrEmailTaken):
			c.JSON(http.StatusConflict, errorResponse{Error: fmt.Sprintf(ErrEmailTakenFmt, req.Email)})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		}
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *userHandler) delete(c *gin.Context) {
	userID, ok := pathID(c, "userId", ErrInvalidUserID)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrUserNotFoundFmt, userID)})
			return
		}

		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.Status(http.StatusNoContent)
}
