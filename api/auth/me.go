package auth

import (
	"net/http"

	"dewode_server/api/middleware"

	"github.com/MonkyMars/gecho"
)

// HandleMe returns the admin identity behind the current session cookie.
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("No active session"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"adminId":   claims.Sub,
			"role":      claims.Role,
			"expiresAt": claims.Exp,
		}),
		gecho.Send(),
	)
}
