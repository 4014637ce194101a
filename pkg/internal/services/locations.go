package services

import (
	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"gorm.io/gorm"
)

func ListLocation(take int, offset int) ([]models.Location, error) {
	var locations []models.Location
	err := database.C.Where("is_published = ?", true).
		Offset(offset).Limit(take).Find(&locations).Error

	return locations, err
}

func GetLocationWithID(id uint) (models.Location, error) {
	var location models.Location
	if err := database.C.Where(models.Location{
		BaseModel: models.BaseModel{ID: id},
	}).First(&location).Error; err != nil {
		return location, err
	}
	return location, nil
}

func NewLocation(name string) (models.Location, error) {
	location := models.Location{
		Name:        name,
		IsPublished: true,
	}

	err := database.C.Save(&location).Error

	return location, err
}

// DeleteLocation nulls the location reference on dependent posts instead of
// taking the posts down with it.
func DeleteLocation(location models.Location) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("location_id = ?", location.ID).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&location).Error
	})
}
