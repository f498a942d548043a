package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
)

// seedCreatedBy marks configurations stored at startup.
const seedCreatedBy = "system"

// seedSystemPricing stores cfg as the system configuration when the store
// has none. It returns the active system record either way.
func seedSystemPricing(repo repository.PricingRepositoryInterface, cfg model.PricingConfiguration) (*repository.PricingConfigRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := repo.GetActive(ctx, repository.SystemOwnerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}

	rec, err := repo.Create(ctx, repository.SystemOwnerID, cfg, seedCreatedBy)
	if err != nil {
		return nil, err
	}
	log.Info().Int("version", rec.Version).Int("cells", cfg.Len()).Msg("Seeded system pricing")
	return rec, nil
}
