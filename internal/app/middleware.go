package app

import (
	"log"
	"net/http"

	"github.com/gorilla/handlers"
)

// withMiddleware adds combined access logging and panic recovery.
func withMiddleware(next http.Handler) http.Handler {
	logged := handlers.CombinedLoggingHandler(log.Writer(), next)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(logged)
}
