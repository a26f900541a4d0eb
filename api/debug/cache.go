package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ClearCache flushes the whole Redis database. Registered outside
// production only; handy while iterating on catalog data locally.
func (drm *DebugRoutesManager) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := drm.cacheService.ClearAll(); err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cache.clearFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cache.cleared"),
		gecho.Send(),
	)
}

// ClearVerified revokes the verified marker for an email so the code
// flow can be exercised repeatedly during development.
func (drm *DebugRoutesManager) ClearVerified(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.verify.emailRequired"),
			gecho.Send(),
		)
		return
	}

	if err := drm.verificationService.ClearVerified(r.Context(), email); err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("error.verify.clearFailed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.verify.cleared"),
		gecho.Send(),
	)
}
