package types

import "github.com/google/uuid"

// TokenClaims represents the JWT claims resolved for a request.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}
