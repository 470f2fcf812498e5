package testutil

import (
	"context"
	"net/http"
	"time"

	id "formbuilder/pkg/domain"
	"formbuilder/pkg/requestcontext"
)

// WithActor adds the submitting administrator to the request context.
// Invalid IDs are silently ignored.
func WithActor(req *http.Request, actorID string) *http.Request {
	if parsed, err := id.ParsePersonID(actorID); err == nil {
		return req.WithContext(requestcontext.WithActorID(req.Context(), parsed))
	}
	return req
}

// SubmissionContext returns a context carrying a request ID and a fixed
// clock, as the HTTP middleware would set them.
func SubmissionContext(requestID string, now time.Time) context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), requestID)
	return requestcontext.WithTime(ctx, now)
}
