package repository

import (
	"context"
	"time"

	"warranty-service/internal/domain"

	"github.com/google/uuid"
)

// ClaimRepository persists warranty claims. Create assigns the identity.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.WarrantyClaim) error
}

// PrepareNew stamps a claim with a fresh id, the current schema version and
// its creation time.
func PrepareNew(claim *domain.WarrantyClaim, now time.Time) {
	claim.ID = uuid.NewString()
	claim.SchemaVersion = domain.ClaimSchemaVersion
	claim.CreatedAt = now.UTC()
}
