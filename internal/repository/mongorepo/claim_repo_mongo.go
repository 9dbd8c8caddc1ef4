package mongorepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"warranty-service/internal/domain"
	"warranty-service/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName holds claims of every schema version; older documents
// lack schema_version and are never rewritten here.
const CollectionName = "warrantyclaims"

type claimRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewClaimRepository(db *mongo.Database) repository.ClaimRepository {
	return newClaimRepo(db.Collection(CollectionName))
}

func newClaimRepo(coll *mongo.Collection) *claimRepo {
	return &claimRepo{coll: coll, now: time.Now}
}

func (r *claimRepo) Create(ctx context.Context, claim *domain.WarrantyClaim) error {
	repository.PrepareNew(claim, r.now())

	if _, err := r.coll.InsertOne(ctx, claim); err != nil {
		log.Printf("mongo: insert claim %s: %v", claim.ID, err)
		return fmt.Errorf("insert warranty claim: %w", err)
	}
	return nil
}
