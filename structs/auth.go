package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// AuthClaims are the claims carried in the admin session token.
type AuthClaims struct {
	Sub  string    `json:"sub"` // admin id
	Role string    `json:"role"`
	Iat  time.Time `json:"iat"`
	Exp  time.Time `json:"exp"`
	Jti  uuid.UUID `json:"jti"`
}

type AdminLoginRequest struct {
	AdminID  string `json:"adminId" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=4,max=100"`
}

type AdminLoginResponse struct {
	AdminID   string    `json:"adminId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}
