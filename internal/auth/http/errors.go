package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/pkg/httpx"
	"github.com/aussiebroadwan/iic/pkg/slogx"
)

// statusForKind maps service error kinds to HTTP status codes.
func statusForKind(k service.Kind) int {
	switch k {
	case service.KindValidation, service.KindBadRequest:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single place where service failures become HTTP
// responses. Messages of 5xx failures are never echoed from the cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Error("unhandled error", slog.Any("error", err))
		httpx.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := statusForKind(svcErr.Kind)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed",
			slog.String("kind", svcErr.Kind.String()),
			slog.Any("error", err),
		)
	case svcErr.Err != nil:
		log.Info("request rejected",
			slog.String("kind", svcErr.Kind.String()),
			slog.Any("error", err),
		)
	}

	message := svcErr.Message
	if svcErr.Kind == service.KindUpstream {
		message = "failed to authenticate with google"
	}
	httpx.WriteMessage(w, status, message)
}
