package auth

import (
	"net/http"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AdminLoginRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	token, expiresAt, err := arm.authService.Login(r.Context(), body)
	if err != nil {
		arm.logger.Warn("Login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, token, expiresAt, w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(structs.AdminLoginResponse{
			AdminID:   body.AdminID,
			ExpiresAt: expiresAt,
		}),
		gecho.Send(),
	)
}
