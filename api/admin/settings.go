package admin

import (
	"errors"
	"net/http"

	"dewode_server/lib"
	"dewode_server/structs"

	"github.com/MonkyMars/gecho"
)

// GetSettings handles GET /admin/settings
func (arm *AdminRoutesManager) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := arm.settingsService.GetSettings(r.Context())
	if err != nil {
		arm.logger.Error("Failed to fetch settings", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.settings.fetchFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"settings": settings}),
		gecho.Send(),
	)
}

// UpdateSettings handles PUT /admin/settings. An empty password keeps the
// current one.
func (arm *AdminRoutesManager) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SettingsInput](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.settings.invalidRequestBody"), gecho.WithData(err), gecho.Send())
		return
	}

	settings, err := arm.settingsService.UpdateSettings(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrValidation) {
			gecho.BadRequest(w, gecho.WithMessage("error.settings.passwordRequired"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update settings", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.settings.updateFailed"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.settings.updated"),
		gecho.WithData(map[string]any{"settings": settings}),
		gecho.Send(),
	)
}
