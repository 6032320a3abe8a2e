package domain

import "errors"

// API token verification failures carry the reason so callers can report
// expired vs malformed vs unknown/disabled client distinctly.
var ErrTokenExpired = errors.New("token has expired")
var ErrTokenMalformed = errors.New("token is malformed")
var ErrTokenInvalid = errors.New("token signature or claims invalid")

// TokenClaims is the verified claim set of an API bearer token.
// Tokens are ephemeral: nothing is persisted beyond issuance and expiry.
type TokenClaims struct {
	AppID   string
	AppName string
}
