package verify

import (
	"errors"
	"net/http"
	"strings"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

// SendCode handles POST /verify/send
func (vrm *VerifyRoutesManager) SendCode(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SendCodeRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.verify.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	if err := vrm.verificationService.SendCode(r.Context(), body.Email); err != nil {
		vrm.logger.Error("Failed to send verification code", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.verify.sendFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.verify.codeSent"),
		gecho.Send(),
	)
}

// ConfirmCode handles POST /verify/confirm
func (vrm *VerifyRoutesManager) ConfirmCode(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.VerifyCodeRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.verify.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	if err := vrm.verificationService.VerifyCode(r.Context(), body.Email, body.Code); err != nil {
		switch {
		case errors.Is(err, lib.ErrExpiredCode):
			gecho.BadRequest(w, gecho.WithMessage("error.verify.codeExpired"), gecho.Send())
		case errors.Is(err, lib.ErrInvalidCode):
			gecho.BadRequest(w, gecho.WithMessage("error.verify.codeInvalid"), gecho.Send())
		default:
			vrm.logger.Error("Failed to confirm verification code", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("error.verify.confirmFailed"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.verify.confirmed"),
		gecho.WithData(structs.VerificationStatusResponse{
			Email:    strings.ToLower(strings.TrimSpace(body.Email)),
			Verified: true,
		}),
		gecho.Send(),
	)
}

// GetStatus handles GET /verify/status?email=...
func (vrm *VerifyRoutesManager) GetStatus(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.verify.emailRequired"), gecho.Send())
		return
	}

	verified, err := vrm.verificationService.IsVerified(r.Context(), email)
	if err != nil {
		vrm.logger.Error("Failed to check verification status", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.verify.statusFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.VerificationStatusResponse{
			Email:    email,
			Verified: verified,
		}),
		gecho.Send(),
	)
}
