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
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

func GetAuthSessionCacheKey(token string) string {
	return fmt.Sprintf("auth-session#%s", token)
}

// NewAuthSession opens a cookie session for an account. Lifetime comes from
// configuration so operators can tune it without a rebuild.
func NewAuthSession(account models.Account) (models.AuthSession, error) {
	lifetime := viper.GetDuration("security.session_lifetime")
	if lifetime == 0 {
		lifetime = 7 * 24 * time.Hour
	}

	session := models.AuthSession{
		Token:     uuid.NewString(),
		ExpiredAt: time.Now().Add(lifetime),
		AccountID: account.ID,
	}

	if err := database.C.Save(&session).Error; err != nil {
		return session, fmt.Errorf("unable to open session: %v", err)
	}

	return session, nil
}

// GetAuthSessionWithToken resolves a session token to the account behind it.
// Hits go through the in-process cache to keep the per-request lookup cheap.
func GetAuthSessionWithToken(token string) (models.AuthSession, error) {
	marshal := marshaler.New(cache.New[any](localCache.S))
	ctx := context.Background()

	var session models.AuthSession
	if hit, err := marshal.Get(ctx, GetAuthSessionCacheKey(token), new(models.AuthSession)); err == nil {
		session = *hit.(*models.AuthSession)
	} else {
		if err := database.C.
			Where("token = ?", token).
			Preload("Account").
			First(&session).Error; err != nil {
			return session, err
		}

		_ = marshal.Set(
			ctx,
			GetAuthSessionCacheKey(token),
			session,
			store.WithExpiration(60*time.Second),
			store.WithTags([]string{"auth-session", fmt.Sprintf("account#%d", session.AccountID)}),
		)
	}

	if session.ExpiredAt.Before(time.Now()) {
		return session, fmt.Errorf("session has been expired")
	}

	return session, nil
}

func DeleteAuthSession(session models.AuthSession) error {
	marshal := marshaler.New(cache.New[any](localCache.S))
	_ = marshal.Delete(context.Background(), GetAuthSessionCacheKey(session.Token))

	return database.C.Delete(&session).Error
}
