package domain

import (
	"errors"
	"time"
)

// ItemStatus represents the publication state of an item.
type ItemStatus string

const (
	ItemActive   ItemStatus = "active"
	ItemInactive ItemStatus = "inactive"
	ItemDraft    ItemStatus = "draft"
)

// IsValid reports whether s is one of the known item statuses.
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemActive, ItemInactive, ItemDraft:
		return true
	}
	return false
}

var ErrItemNotFound = errors.New("item not found")
var ErrOwnerNotFound = errors.New("item owner not found")
var ErrInvalidPrice = errors.New("price must be greater than zero")
var ErrInvalidStatus = errors.New("invalid item status")

// Item is owned by exactly one user.
type Item struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Status      ItemStatus `json:"status"`
	OwnerID     int        `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
