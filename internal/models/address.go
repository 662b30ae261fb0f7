package models

import "time"

type Address struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Street    string    `json:"street"`
	Colony    string    `json:"colony"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	ZipCode   string    `json:"zipCode"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateAddressRequest struct {
	UserID    int64  `json:"userId" binding:"required"`
	Street    string `json:"street" binding:"required"`
	Colony    string `json:"colony" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Country   string `json:"country" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	Reference string `json:"reference"`
}
