package services

import (
	"context"
	"fmt"
	"time"

	localCache "github.com/meridian-press/chronicle/pkg/internal/cache"
	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"gorm.io/gorm"
)

func GetCategoryCacheKey(slug string) string {
	return fmt.Sprintf("category-slug#%s", slug)
}

func ListCategory(take int, offset int) ([]models.Category, error) {
	var categories []models.Category
	err := database.C.Where("is_published = ?", true).
		Offset(offset).Limit(take).Find(&categories).Error

	return categories, err
}

// GetCategoryWithSlug resolves a published category by its slug. Unpublished
// categories are treated the same as missing ones.
func GetCategoryWithSlug(slug string) (models.Category, error) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()

	var category models.Category
	if hit, err := marshal.Get(ctx, GetCategoryCacheKey(slug), new(models.Category)); err == nil {
		category = *hit.(*models.Category)
		return category, nil
	}

	if err := database.C.Where(models.Category{Slug: slug, IsPublished: true}).
		First(&category).Error; err != nil {
		return category, err
	}

	_ = marshal.Set(
		ctx,
		GetCategoryCacheKey(slug),
		category,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"category", fmt.Sprintf("category#%d", category.ID)}),
	)

	return category, nil
}

// GetCategory looks a category up by slug with no publication filter; the
// curation surface needs to reach hidden categories too.
func GetCategory(slug string) (models.Category, error) {
	var category models.Category
	if err := database.C.Where(models.Category{Slug: slug}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func GetCategoryWithID(id uint) (models.Category, error) {
	var category models.Category
	if err := database.C.Where(models.Category{
		BaseModel: models.BaseModel{ID: id},
	}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func NewCategory(slug, title, description string) (models.Category, error) {
	category := models.Category{
		Slug:        slug,
		Title:       title,
		Description: description,
		IsPublished: true,
	}

	err := database.C.Save(&category).Error

	return category, err
}

func EditCategory(category models.Category, slug, title, description string, isPublished bool) (models.Category, error) {
	prevSlug := category.Slug

	category.Slug = slug
	category.Title = title
	category.Description = description
	category.IsPublished = isPublished

	if err := database.C.Save(&category).Error; err != nil {
		return category, err
	}

	flushCategoryCache(prevSlug, slug)

	return category, nil
}

// DeleteCategory detaches dependent posts before removing the category, so the
// posts themselves survive with a null category.
func DeleteCategory(category models.Category) error {
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return err
	}

	flushCategoryCache(category.Slug)

	return nil
}

func flushCategoryCache(slugs ...string) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()
	for _, slug := range slugs {
		_ = marshal.Delete(ctx, GetCategoryCacheKey(slug))
	}
}
