package services

import (
	"testing"
	"time"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthSessionLifecycle(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	session, err := NewAuthSession(alice)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	got, err := GetAuthSessionWithToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.Account.ID)

	require.NoError(t, DeleteAuthSession(got))

	_, err = GetAuthSessionWithToken(session.Token)
	assert.Error(t, err)
}

func TestExpiredSessionRejected(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	session, err := NewAuthSession(alice)
	require.NoError(t, err)

	session.ExpiredAt = time.Now().Add(-time.Minute)
	require.NoError(t, database.C.Save(&session).Error)

	_, err = GetAuthSessionWithToken(session.Token)
	assert.Error(t, err)
}

func TestDoAutoDatabaseCleanup(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	session, err := NewAuthSession(alice)
	require.NoError(t, err)

	session.ExpiredAt = time.Now().Add(-time.Minute)
	require.NoError(t, database.C.Save(&session).Error)

	DoAutoDatabaseCleanup()

	var count int64
	require.NoError(t, database.C.Model(&session).Where("token = ?", session.Token).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCheckAccountPassword(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")

	assert.True(t, CheckAccountPassword(alice, "secret123"))
	assert.False(t, CheckAccountPassword(alice, "wrong"))
}

func TestDeleteAccountCascades(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")
	bob := mustAccount(t, "bob")

	post, err := NewPost(alice, models.Post{Title: "gone", Text: "text", PubDate: time.Now()})
	require.NoError(t, err)

	_, err = NewComment(bob, post, "a comment by bob")
	require.NoError(t, err)
	_, err = NewComment(alice, post, "a comment by alice")
	require.NoError(t, err)

	require.NoError(t, DeleteAccount(alice))

	var posts, comments int64
	require.NoError(t, database.C.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, database.C.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 0, posts)
	assert.EqualValues(t, 0, comments)
}

func TestDeleteAccountRollsBackOnFailure(t *testing.T) {
	setupTest(t)

	alice := mustAccount(t, "alice")
	session, err := NewAuthSession(alice)
	require.NoError(t, err)

	// Knock out one of the dependent tables so the cascade cannot finish.
	require.NoError(t, database.C.Migrator().DropTable(&models.Comment{}))

	require.Error(t, DeleteAccount(alice))

	var accounts int64
	require.NoError(t, database.C.Model(&models.Account{}).Where("id = ?", alice.ID).Count(&accounts).Error)
	assert.EqualValues(t, 1, accounts)

	var sessions int64
	require.NoError(t, database.C.Model(&models.AuthSession{}).Where("token = ?", session.Token).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)
}
