// Package metadata copies request correlation headers into the context.
package metadata

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	id "formbuilder/pkg/domain"
	"formbuilder/pkg/requestcontext"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderActorID   = "X-Actor-ID"
)

// RequestMetadata stores the request ID and the submitting administrator in
// the context. A missing request ID is generated and echoed back. A malformed
// actor ID is ignored.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		if raw := strings.TrimSpace(r.Header.Get(HeaderActorID)); raw != "" {
			if actor, err := id.ParsePersonID(raw); err == nil {
				ctx = requestcontext.WithActorID(ctx, actor)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
