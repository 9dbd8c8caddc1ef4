package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ClaimSchemaVersion is written to every claim created by this service.
// Rows without a version predate it and are left untouched.
const ClaimSchemaVersion = 2

type WarrantyClaim struct {
	ID            string                      `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	SchemaVersion int                         `json:"schema_version" bson:"schema_version" gorm:"not null;default:2"`
	PlatformName  string                      `json:"platform_name" bson:"platform_name" gorm:"type:varchar(255);not null"`
	FullName      string                      `json:"full_name" bson:"full_name" gorm:"type:varchar(255);not null"`
	Email         string                      `json:"email" bson:"email" gorm:"type:varchar(255);not null;index"`
	Phone         string                      `json:"phone" bson:"phone" gorm:"type:varchar(20);not null"`
	Address       string                      `json:"address" bson:"address" gorm:"type:text;not null"`
	City          string                      `json:"city,omitempty" bson:"city,omitempty" gorm:"type:varchar(255)"`
	Pincode       string                      `json:"pincode,omitempty" bson:"pincode,omitempty" gorm:"type:varchar(20)"`
	OrderNumber   string                      `json:"order_number" bson:"order_number" gorm:"type:varchar(64);not null;index"`
	OrderDate     time.Time                   `json:"order_date" bson:"order_date" gorm:"not null"`
	ProductType   string                      `json:"product_type" bson:"product_type" gorm:"type:varchar(255);not null"`
	ProductName   string                      `json:"product_name" bson:"product_name" gorm:"type:varchar(255);not null"`
	Description   string                      `json:"description,omitempty" bson:"description,omitempty" gorm:"type:text"`
	Invoice       string                      `json:"invoice" bson:"invoice" gorm:"type:text;not null"`
	Images        datatypes.JSONSlice[string] `json:"images" bson:"images" gorm:"not null"`
	Video         string                      `json:"video" bson:"video" gorm:"type:text;not null"`
	PONumber      string                      `json:"po_number,omitempty" bson:"po_number,omitempty" gorm:"column:po_number;type:varchar(64)"`
	CreatedAt     time.Time                   `json:"created_at" bson:"created_at" gorm:"autoCreateTime"`
}

func (WarrantyClaim) TableName() string {
	return "warranty_claims"
}
