package domain

import "time"

type ClaimCreatedEvent struct {
	ClaimID     string    `json:"claimId"`
	OrderNumber string    `json:"orderNumber"`
	ProductName string    `json:"productName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewClaimCreatedEvent(c *WarrantyClaim) ClaimCreatedEvent {
	return ClaimCreatedEvent{
		ClaimID:     c.ID,
		OrderNumber: c.OrderNumber,
		ProductName: c.ProductName,
		Email:       c.Email,
		CreatedAt:   c.CreatedAt,
	}
}
