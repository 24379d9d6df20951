package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is the subject of ledger records: the party whose running balance
// the ledger tracks. Every client is assigned to an owning salesperson.
type Client struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LegalName  string             `json:"legalName" bson:"legalName"`
	TaxID      string             `json:"taxId" bson:"taxId"`
	Address    string             `json:"address,omitempty" bson:"address,omitempty"`
	City       string             `json:"city,omitempty" bson:"city,omitempty"`
	Province   string             `json:"province,omitempty" bson:"province,omitempty"`
	PostalCode string             `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email      string             `json:"email,omitempty" bson:"email,omitempty"`
	OwnerID    primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateClientRequest is the body for creating a client
type CreateClientRequest struct {
	LegalName  string `json:"legalName" validate:"required"`
	TaxID      string `json:"taxId" validate:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	OwnerID    string `json:"ownerId" validate:"required"`
}

// UpdateClientRequest carries partial updates; nil fields are left untouched
type UpdateClientRequest struct {
	LegalName  *string `json:"legalName,omitempty"`
	TaxID      *string `json:"taxId,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	Province   *string `json:"province,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	OwnerID    *string `json:"ownerId,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
}
