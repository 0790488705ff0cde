package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/lib/logger/sl"
	"github.com/HaruSatoru/shareit/internal/storage"
)

type Service struct {
	log          *slog.Logger
	userSaver    UserSaver
	userProvider UserProvider
}

type UserSaver interface {
	SaveUser(ctx context.Context, name, email string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type UserProvider interface {
	UserByID(ctx context.Context, userID int64) (models.User, error)
	Users(ctx context.Context) ([]models.User, error)
}

// UpdateRequest carries a partial user update; empty fields keep current
// values.
type UpdateRequest struct {
	Name  string
	Email string
}

// New returns a new instance of the user service
func New(log *slog.Logger, userSaver UserSaver, userProvider UserProvider) *Service {
	return &Service{log: log, userSaver: userSaver, userProvider: userProvider}
}

func (s *Service) Create(ctx context.Context, name, email string) (models.User, error) {
	const op = "user.Create"
	log := s.log.With(slog.String("op", op))

	created, err := s.userSaver.SaveUser(ctx, name, email)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			log.Warn("duplicate email on user creation")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		log.Error("failed to save user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user created", slog.Int64("userID", created.ID))

	return created, nil
}

func (s *Service) User(ctx context.Context, userID int64) (models.User, error) {
	const op = "user.User"
	log := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	found, err := s.userProvider.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("retrieval attempt for unknown user")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to get user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return found, nil
}

func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	const op = "user.Users"
	log := s.log.With(slog.String("op", op))

	users, err := s.userProvider.Users(ctx)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("users listed", slog.Int("count", len(users)))

	return users, nil
}

func (s *Service) Update(ctx context.Context, userID int64, req UpdateRequest) (models.User, error) {
	const op = "user.Update"
	log := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	current, err := s.userProvider.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("update attempt for unknown user")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to get user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != "" {
		current.Name = req.Name
	}

	if req.Email != "" {
		current.Email = req.Email
	}

	updated, err := s.userSaver.UpdateUser(ctx, current)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			log.Warn("duplicate email on user update")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		log.Error("failed to update user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user updated")

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID int64) error {
	const op = "user.Delete"
	log := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	if err := s.userSaver.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("deletion attempt for unknown user")
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to delete user", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user deleted")

	return nil
}
