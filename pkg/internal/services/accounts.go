package services

import (
	"fmt"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account by id: %v", err)
	}
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func NewAccount(name, nick, email, password string) (models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("unable to process password: %v", err)
	}

	account := models.Account{
		Name:     name,
		Nick:     nick,
		Email:    email,
		Password: string(hash),
	}

	if err := database.C.Save(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

func CheckAccountPassword(account models.Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) == nil
}

// EditAccountProfile lets accounts update their own profile fields; name and
// credentials stay untouched here.
func EditAccountProfile(account models.Account, nick, description, avatar string) (models.Account, error) {
	account.Nick = nick
	account.Description = description
	account.Avatar = avatar

	err := database.C.Save(&account).Error

	return account, err
}

// DeleteAccount takes the account down with everything it ever wrote. Any
// failed step rolls the whole cascade back.
func DeleteAccount(account models.Account) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", account.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		comments := tx.NamingStrategy.TableName("comments")
		posts := tx.NamingStrategy.TableName("posts")
		if err := tx.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE post_id IN (SELECT id FROM %s WHERE author_id = ?)", comments, posts),
			account.ID,
		).Error; err != nil {
			return err
		}

		if err := tx.Where("author_id = ?", account.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.AuthSession{}).Error; err != nil {
			return err
		}

		return tx.Delete(&account).Error
	})
}
