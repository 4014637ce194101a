package models

import "time"

type Account struct {
	BaseModel

	Name        string `json:"name" gorm:"uniqueIndex" validate:"lowercase,alphanum"`
	Nick        string `json:"nick"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"`

	Posts    []Post    `json:"posts" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:AuthorID"`
}

type AuthSession struct {
	BaseModel

	Token     string    `json:"token" gorm:"uniqueIndex"`
	ExpiredAt time.Time `json:"expired_at"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`
}
