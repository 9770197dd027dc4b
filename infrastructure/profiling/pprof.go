// Package profiling exposes net/http/pprof on a loopback port when enabled.
package profiling

import (
	"errors"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // served on localhost only
	"os"
	"time"

	"github.com/jonesrussell/alsahih/infrastructure/logger"
)

const (
	defaultPprofPort  = "6060"
	readHeaderTimeout = 5 * time.Second
)

// Enabled reports whether ENABLE_PROFILING=true.
func Enabled() bool {
	return os.Getenv("ENABLE_PROFILING") == "true"
}

// Address returns the loopback listen address, honouring PPROF_PORT.
func Address() string {
	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = defaultPprofPort
	}
	return "localhost:" + port
}

// StartPprofServer starts the pprof endpoints in the background when
// profiling is enabled. It never blocks and never fails the caller.
func StartPprofServer(log logger.Logger) {
	if !Enabled() {
		return
	}

	addr := Address()
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.DefaultServeMux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info("Starting pprof server", logger.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("pprof server stopped", logger.Error(err))
		}
	}()
}
