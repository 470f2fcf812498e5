package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with defaults sized for form submissions.
// writeTimeout should exceed the submission timeout so a slow run can still
// report its result.
func New(addr string, handler http.Handler, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}
