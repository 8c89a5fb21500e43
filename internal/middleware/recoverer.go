package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shorturls/internal/model"
)

// headerWriter is implemented by response writers that track whether the
// status line has been sent, such as logger.ResponseWriter.
type headerWriter interface {
	WroteHeader() bool
}

// Recoverer turns a panic in a handler into a 500 JSON error envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			// ErrAbortHandler means the client is gone; there is nobody to answer
			if rec == nil || rec == http.ErrAbortHandler {
				return
			}

			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Unhandled panic")

			if hw, ok := w.(headerWriter); ok && hw.WroteHeader() {
				// the status line is gone; appending an envelope would corrupt the body
				return
			}

			writeError(w, http.StatusInternalServerError, "Server error", fmt.Sprint(rec))
		}()

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: message, Details: details})
}
