package services

import (
	"fmt"
	"time"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Raw fragments go through the naming strategy so a configured table prefix
// still resolves to the right relations.
func postTable(tx *gorm.DB) string {
	return tx.NamingStrategy.TableName("posts")
}

func categoryTable(tx *gorm.DB) string {
	return tx.NamingStrategy.TableName("categories")
}

// FilterPostVisible narrows tx down to posts an anonymous reader may see: the
// post is published, its category (when set) is published, and its publication
// moment has elapsed.
func FilterPostVisible(tx *gorm.DB, date time.Time) *gorm.DB {
	posts, categories := postTable(tx), categoryTable(tx)
	return tx.
		Joins(fmt.Sprintf("LEFT JOIN %s ON %s.id = %s.category_id", categories, categories, posts)).
		Where(posts+".is_published = ?", true).
		Where(posts+".category_id IS NULL OR "+categories+".is_published = ?", true).
		Where(posts+".pub_date <= ?", date)
}

func FilterPostWithCategory(tx *gorm.DB, id uint) *gorm.DB {
	return tx.Where(postTable(tx)+".category_id = ?", id)
}

// FilterPostWithAuthor selects every post the author ever wrote, published or
// not. The bar here is authorship, not visibility.
func FilterPostWithAuthor(tx *gorm.DB, uid uint) *gorm.DB {
	return tx.Where(postTable(tx)+".author_id = ?", uid)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Category").
		Preload("Location")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where(postTable(tx)+".id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	item.CommentCount = CountPostComments(item.ID)

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int, order any) ([]*models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []*models.Post
	if err := PreloadGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	idx := lo.Map(items, func(item *models.Post, index int) uint {
		return item.ID
	})

	// Annotate each post with its comment count
	var counts []struct {
		PostID uint
		Count  int64
	}
	if err := database.C.Model(&models.Comment{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN (?)", idx).
		Group("post_id").
		Scan(&counts).Error; err != nil {
		return items, err
	}

	itemMap := lo.SliceToMap(items, func(item *models.Post) (uint, *models.Post) {
		return item.ID, item
	})

	for _, info := range counts {
		if post, ok := itemMap[info.PostID]; ok {
			post.CommentCount = info.Count
		}
	}

	return items, nil
}

// ListVisiblePosts is the public index: visible posts only, newest first.
func ListVisiblePosts(take int, offset int) (int64, []*models.Post, error) {
	tx := FilterPostVisible(database.C, time.Now())

	count, err := CountPost(tx)
	if err != nil {
		return count, nil, err
	}

	items, err := ListPost(tx, take, offset, postTable(tx)+".pub_date DESC")
	return count, items, err
}

// ListPostsWithCategory scopes the public index to one published category. The
// not-found error for a missing or unpublished category is the caller's to map.
func ListPostsWithCategory(slug string, take int, offset int) (int64, []*models.Post, error) {
	category, err := GetCategoryWithSlug(slug)
	if err != nil {
		return 0, nil, err
	}

	tx := FilterPostWithCategory(FilterPostVisible(database.C, time.Now()), category.ID)

	count, err := CountPost(tx)
	if err != nil {
		return count, nil, err
	}

	items, err := ListPost(tx, take, offset, postTable(tx)+".pub_date DESC")
	return count, items, err
}

// ListPostsWithAuthor backs the profile page: everything the author wrote,
// without any publication filter.
func ListPostsWithAuthor(author models.Account, take int, offset int) (int64, []*models.Post, error) {
	tx := FilterPostWithAuthor(database.C, author.ID)

	count, err := CountPost(tx)
	if err != nil {
		return count, nil, err
	}

	items, err := ListPost(tx, take, offset, postTable(tx)+".pub_date DESC")
	return count, items, err
}

func NewPost(user models.Account, item models.Post) (models.Post, error) {
	item.AuthorID = user.ID
	item.IsPublished = true

	if item.PubDate.IsZero() {
		item.PubDate = time.Now()
	}

	if item.CategoryID != nil {
		if _, err := GetCategoryWithID(*item.CategoryID); err != nil {
			return item, fmt.Errorf("unable to find category to post in: %v", err)
		}
	}
	if item.LocationID != nil {
		if _, err := GetLocationWithID(*item.LocationID); err != nil {
			return item, fmt.Errorf("unable to find location to tag: %v", err)
		}
	}

	item.Language = DetectLanguage(item.Text)

	if err := database.C.Save(&item).Error; err != nil {
		return item, err
	}

	log.Debug().Uint("id", item.ID).Uint("author", user.ID).Msg("New post has been recorded.")
	return item, nil
}

func EditPost(item models.Post) (models.Post, error) {
	if item.CategoryID != nil {
		if _, err := GetCategoryWithID(*item.CategoryID); err != nil {
			return item, fmt.Errorf("unable to find category to post in: %v", err)
		}
	}
	if item.LocationID != nil {
		if _, err := GetLocationWithID(*item.LocationID); err != nil {
			return item, fmt.Errorf("unable to find location to tag: %v", err)
		}
	}

	item.Language = DetectLanguage(item.Text)

	err := database.C.Save(&item).Error

	return item, err
}

// DeletePost removes the post and every comment hanging off it.
func DeletePost(item models.Post) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func TruncatePostContent(post models.Post) models.Post {
	const maxLength = 160
	// Cut on runes, not bytes, so multi-byte text survives truncation intact.
	if runes := []rune(post.Text); len(runes) > maxLength {
		post.Text = string(runes[:maxLength]) + "..."
	}
	return post
}
