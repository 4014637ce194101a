package models

type Category struct {
	BaseModel

	Slug        string `json:"slug" gorm:"uniqueIndex" validate:"lowercase"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`

	Posts []Post `json:"posts" gorm:"foreignKey:CategoryID"`
}

type Location struct {
	BaseModel

	Name        string `json:"name"`
	IsPublished bool   `json:"is_published"`

	Posts []Post `json:"posts" gorm:"foreignKey:LocationID"`
}
