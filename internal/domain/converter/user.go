package converter

import (
	"github.com/HaruSatoru/shareit/internal/domain/models"
	storageModel "github.com/HaruSatoru/shareit/internal/storage/model"
)

func ToUserFromStorage(storageUser storageModel.User) models.User {
	return models.User{
		ID:    storageUser.ID,
		Name:  storageUser.Name,
		Email: storageUser.Email,
	}
}

func ToUsersFromStorage(storageUsers []storageModel.User) []models.User {
	users := make([]models.User, len(storageUsers))
	for i, user := range storageUsers {
		users[i] = ToUserFromStorage(user)
	}

	return users
}
