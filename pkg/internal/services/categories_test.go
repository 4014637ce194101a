package services

import (
	"testing"
	"time"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategoryDetachesPosts(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	category, err := NewCategory("doomed", "Doomed", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = NewPost(alice, models.Post{
			Title:      "survivor",
			Text:       "text",
			PubDate:    time.Now().Add(-time.Hour),
			CategoryID: &category.ID,
		})
		require.NoError(t, err)
	}

	require.NoError(t, DeleteCategory(category))

	var posts []models.Post
	require.NoError(t, database.C.Find(&posts).Error)
	require.Len(t, posts, 3)
	for _, post := range posts {
		assert.Nil(t, post.CategoryID)
	}
}

func TestGetCategoryWithSlug(t *testing.T) {
	setupTest(t)

	category, err := NewCategory("music", "Music", "All things loud")
	require.NoError(t, err)

	got, err := GetCategoryWithSlug("music")
	require.NoError(t, err)
	assert.Equal(t, category.ID, got.ID)

	// Second read comes from cache and still resolves.
	got, err = GetCategoryWithSlug("music")
	require.NoError(t, err)
	assert.Equal(t, category.ID, got.ID)

	_, err = GetCategoryWithSlug("nope")
	assert.Error(t, err)
}

func TestDeleteLocationDetachesPosts(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	location, err := NewLocation("Reykjavik")
	require.NoError(t, err)

	post, err := NewPost(alice, models.Post{
		Title:      "northbound",
		Text:       "text",
		PubDate:    time.Now().Add(-time.Hour),
		LocationID: &location.ID,
	})
	require.NoError(t, err)

	require.NoError(t, DeleteLocation(location))

	var got models.Post
	require.NoError(t, database.C.First(&got, post.ID).Error)
	assert.Nil(t, got.LocationID)
}
