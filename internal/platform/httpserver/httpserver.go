package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server for the API. Write timeout leaves room for the
// evidence timeout plus upload transfer.
func New(addr string, handler http.Handler, evidenceTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      evidenceTimeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
