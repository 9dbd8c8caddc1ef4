package services

import (
	"context"

	"warranty-service/internal/domain"
	rabbit "warranty-service/internal/infra/rabbitmq"
)

const ClaimCreatedPattern = "warranty.claim.created"

type claimEventNotifier struct {
	publisher rabbit.PublisherInterface
}

// NewClaimEventNotifier publishes a warranty.claim.created event per claim.
func NewClaimEventNotifier(pub rabbit.PublisherInterface) ClaimNotifier {
	return &claimEventNotifier{publisher: pub}
}

func (n *claimEventNotifier) Name() string {
	return "rabbitmq"
}

func (n *claimEventNotifier) Notify(ctx context.Context, claim *domain.WarrantyClaim) error {
	return n.publisher.Publish(ctx, ClaimCreatedPattern, domain.NewClaimCreatedEvent(claim))
}
