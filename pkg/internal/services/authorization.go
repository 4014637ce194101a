package services

import "github.com/meridian-press/chronicle/pkg/internal/models"

// CanMutate is the single ownership rule gating every update and delete on
// posts and comments: the acting account must be the author. There is no role
// hierarchy and no moderation override.
func CanMutate(actor models.Account, authorId uint) bool {
	return actor.ID == authorId
}
