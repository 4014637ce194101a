package services

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestVisiblePostsFilter(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	published, err := NewCategory("travel", "Travel", "")
	require.NoError(t, err)
	hidden, err := NewCategory("drafts", "Drafts", "")
	require.NoError(t, err)
	_, err = EditCategory(hidden, "drafts", "Drafts", "", false)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)

	visible, err := NewPost(alice, models.Post{Title: "visible", Text: "text", PubDate: past, CategoryID: &published.ID})
	require.NoError(t, err)
	uncategorized, err := NewPost(alice, models.Post{Title: "uncategorized", Text: "text", PubDate: past})
	require.NoError(t, err)

	// Scheduled an hour into the future; should stay off the index for now.
	scheduled, err := NewPost(alice, models.Post{Title: "scheduled", Text: "text", PubDate: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	unpublished, err := NewPost(alice, models.Post{Title: "unpublished", Text: "text", PubDate: past})
	require.NoError(t, err)
	unpublished.IsPublished = false
	require.NoError(t, database.C.Save(&unpublished).Error)

	hiddenCategory, err := NewPost(alice, models.Post{Title: "hidden-category", Text: "text", PubDate: past, CategoryID: &hidden.ID})
	require.NoError(t, err)

	count, items, err := ListVisiblePosts(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	names := lo.Map(items, func(item *models.Post, _ int) string { return item.Title })
	assert.ElementsMatch(t, []string{"visible", "uncategorized"}, names)

	// The profile listing has no publication bar at all.
	count, items, err = ListPostsWithAuthor(alice, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)

	ids := lo.Map(items, func(item *models.Post, _ int) uint { return item.ID })
	assert.Contains(t, ids, scheduled.ID)
	assert.Contains(t, ids, unpublished.ID)
	assert.Contains(t, ids, hiddenCategory.ID)
	assert.Contains(t, ids, visible.ID)
	assert.Contains(t, ids, uncategorized.ID)
}

func TestVisiblePostsOrdering(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	for i, offset := range []time.Duration{-3 * time.Hour, -time.Hour, -2 * time.Hour} {
		_, err := NewPost(alice, models.Post{
			Title:   []string{"oldest", "newest", "middle"}[i],
			Text:    "text",
			PubDate: time.Now().Add(offset),
		})
		require.NoError(t, err)
	}

	_, items, err := ListVisiblePosts(10, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)

	names := lo.Map(items, func(item *models.Post, _ int) string { return item.Title })
	assert.Equal(t, []string{"newest", "middle", "oldest"}, names)
}

func TestListPostsWithCategory(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	category, err := NewCategory("stories", "Stories", "")
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	_, err = NewPost(alice, models.Post{Title: "in-category", Text: "text", PubDate: past, CategoryID: &category.ID})
	require.NoError(t, err)
	_, err = NewPost(alice, models.Post{Title: "elsewhere", Text: "text", PubDate: past})
	require.NoError(t, err)

	count, items, err := ListPostsWithCategory("stories", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, items, 1)
	assert.Equal(t, "in-category", items[0].Title)

	_, _, err = ListPostsWithCategory("missing", 10, 0)
	assert.Error(t, err)

	_, err = EditCategory(category, "stories", "Stories", "", false)
	require.NoError(t, err)

	// An unpublished category behaves exactly like a missing one.
	_, _, err = ListPostsWithCategory("stories", 10, 0)
	assert.Error(t, err)
}

func TestCommentCountAnnotation(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")
	bob := mustAccount(t, "bob")

	post, err := NewPost(alice, models.Post{Title: "counted", Text: "text", PubDate: time.Now().Add(-time.Hour)})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = NewComment(bob, post, "nice one")
		require.NoError(t, err)
	}

	_, items, err := ListVisiblePosts(10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].CommentCount)

	got, err := GetPost(database.C, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.CommentCount)
}

func TestDeletePostCascadesComments(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	post, err := NewPost(alice, models.Post{Title: "doomed", Text: "text", PubDate: time.Now()})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = NewComment(alice, post, "comment")
		require.NoError(t, err)
	}

	require.NoError(t, DeletePost(post))

	var count int64
	require.NoError(t, database.C.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestNewPostDefaults(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")
	bob := mustAccount(t, "bob")

	item, err := NewPost(bob, models.Post{Title: "fresh", Text: "Hello there, this is a longer english sentence.", AuthorID: alice.ID})
	require.NoError(t, err)

	// Authorship always comes from the actor, never the payload.
	assert.Equal(t, bob.ID, item.AuthorID)
	assert.True(t, item.IsPublished)
	assert.False(t, item.PubDate.IsZero())
	assert.NotEmpty(t, item.Language)
}

func TestNewPostRejectsUnknownCategory(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	missing := uint(999)
	_, err := NewPost(alice, models.Post{Title: "lost", Text: "text", CategoryID: &missing})
	assert.Error(t, err)
}

func TestTruncatePostContentHandlesMultibyteText(t *testing.T) {
	long := "о " + strings.Repeat("путешествие", 40)
	out := TruncatePostContent(models.Post{Text: long})

	assert.True(t, utf8.ValidString(out.Text))

	runes := []rune(out.Text)
	assert.Len(t, runes, 163)
	assert.Equal(t, "...", string(runes[160:]))
	assert.Equal(t, string([]rune(long)[:160]), string(runes[:160]))

	short := models.Post{Text: "короткая заметка"}
	assert.Equal(t, short.Text, TruncatePostContent(short).Text)
}

func TestPostQueriesHonorTablePrefix(t *testing.T) {
	setupTestWithNaming(t, schema.NamingStrategy{TablePrefix: "chronicle_"})

	alice := mustAccount(t, "alice")

	post, err := NewPost(alice, models.Post{Title: "hello", Text: "hello world"})
	require.NoError(t, err)

	count, items, err := ListVisiblePosts(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, items, 1)
	assert.Equal(t, post.ID, items[0].ID)

	count, items, err = ListPostsWithAuthor(alice, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, items, 1)

	require.NoError(t, DeleteAccount(alice))

	count, _, err = ListVisiblePosts(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
