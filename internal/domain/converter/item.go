package converter

import (
	"github.com/HaruSatoru/shareit/internal/domain/models"
	storageModel "github.com/HaruSatoru/shareit/internal/storage/model"
)

func ToItemFromStorage(storageItem storageModel.Item) models.Item {
	return models.Item{
		ID:          storageItem.ID,
		OwnerID:     storageItem.OwnerID,
		Name:        storageItem.Name,
		Description: storageItem.Description,
		Available:   storageItem.Available,
	}
}

func ToItemsFromStorage(storageItems []storageModel.Item) []models.Item {
	items := make([]models.Item, len(storageItems))
	for i, item := range storageItems {
		items[i] = ToItemFromStorage(item)
	}

	return items
}
