package services

import (
	"time"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup sweeps expired auth sessions. Post visibility is a pure
// read-time predicate, so nothing else needs a timed job.
func DoAutoDatabaseCleanup() {
	deadline := time.Now()
	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range []any{&models.AuthSession{}} {
		tx := database.C.Where("expired_at < ?", deadline).Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto cleanup...")
		}
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
