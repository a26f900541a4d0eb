package handling

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError logs an unexpected handler failure and answers 500. The
// caller skip points the log line at the handler, not this helper.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error(msg, gecho.Field("error", err), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w).Send()
}
