package services

import (
	"fmt"
	"time"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
)

// ListPostComments returns every comment below a post, oldest first, with
// authors preloaded for display.
func ListPostComments(postId uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := database.C.
		Where("post_id = ?", postId).
		Order("pub_date ASC").
		Preload("Author").
		Find(&comments).Error; err != nil {
		return comments, err
	}

	return comments, nil
}

func CountPostComments(postId uint) int64 {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("post_id = ?", postId).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func GetComment(postId, id uint) (models.Comment, error) {
	var comment models.Comment
	if err := database.C.
		Where("id = ? AND post_id = ?", id, postId).
		First(&comment).Error; err != nil {
		return comment, err
	}
	return comment, nil
}

func NewComment(user models.Account, post models.Post, text string) (models.Comment, error) {
	comment := models.Comment{
		Text:     text,
		PubDate:  time.Now(),
		PostID:   post.ID,
		AuthorID: user.ID,
	}

	if err := database.C.Save(&comment).Error; err != nil {
		return comment, fmt.Errorf("unable to save comment: %v", err)
	}

	return comment, nil
}

// EditComment only ever touches the text; the publication moment stays as it
// was written.
func EditComment(comment models.Comment, text string) (models.Comment, error) {
	err := database.C.Model(&comment).Update("text", text).Error
	return comment, err
}

func DeleteComment(comment models.Comment) error {
	return database.C.Delete(&comment).Error
}
