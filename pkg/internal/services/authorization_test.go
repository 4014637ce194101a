package services

import (
	"testing"

	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	alice := models.Account{BaseModel: models.BaseModel{ID: 1}}
	bob := models.Account{BaseModel: models.BaseModel{ID: 2}}

	assert.True(t, CanMutate(alice, 1))
	assert.False(t, CanMutate(bob, 1))
	assert.False(t, CanMutate(models.Account{}, 1))
}
