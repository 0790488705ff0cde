package converter

import (
	"github.com/HaruSatoru/shareit/internal/domain/models"
	storageModel "github.com/HaruSatoru/shareit/internal/storage/model"
)

func ToCommentFromStorage(storageComment storageModel.Comment) models.Comment {
	return models.Comment{
		ID:         storageComment.ID,
		ItemID:     storageComment.ItemID,
		AuthorID:   storageComment.AuthorID,
		AuthorName: storageComment.AuthorName,
		Text:       storageComment.Text,
		Created:    storageComment.Created,
	}
}

func ToCommentsFromStorage(storageComments []storageModel.Comment) []models.Comment {
	comments := make([]models.Comment, len(storageComments))
	for i, comment := range storageComments {
		comments[i] = ToCommentFromStorage(comment)
	}

	return comments
}
