package domain

import (
	"errors"
	"time"
)

var ErrClientAppNotFound = errors.New("client application not found")
var ErrClientAppNameTaken = errors.New("client application name already taken")
var ErrUnknownClient = errors.New("unknown client application")
var ErrClientDisabled = errors.New("client application is disabled")
var ErrInvalidClientSecret = errors.New("invalid client secret")

// ClientApp is a registered API consumer. The plaintext app secret is shown
// exactly once at creation (or regeneration); only a bcrypt hash is stored.
type ClientApp struct {
	ID            int        `json:"id"`
	AppID         string     `json:"app_id"`
	AppSecretHash string     `json:"-"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
