package database

import (
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Category{},
	&models.Location{},
	&models.Post{},
	&models.Comment{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.AuthSession{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
