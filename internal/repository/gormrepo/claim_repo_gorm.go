package gormrepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"warranty-service/internal/domain"
	"warranty-service/internal/repository"

	"gorm.io/gorm"
)

type claimRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewClaimRepository(db *gorm.DB) repository.ClaimRepository {
	return &claimRepo{db: db, now: time.Now}
}

func (r *claimRepo) Create(ctx context.Context, claim *domain.WarrantyClaim) error {
	repository.PrepareNew(claim, r.now())

	result := r.db.WithContext(ctx).Create(claim)
	if result.Error != nil {
		log.Printf("Database save error: %v", result.Error)
		return fmt.Errorf("insert warranty claim: %w", result.Error)
	}

	log.Printf("Warranty claim saved with ID: %s", claim.ID)
	return nil
}
