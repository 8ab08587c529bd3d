package types

import "github.com/golang-jwt/jwt/v5"

// TokenClaims represents the claims in a JWT token. RegisteredClaims.ID
// carries the token ID used for revocation on logout.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}
