package tokens

import "github.com/golang-jwt/jwt/v5"

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

const (
	RoleStaff = "staff"
	RoleUser  = "user"
)
