package httpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"budget-app-go/internal/config"
	"budget-app-go/pkg/logger"
)

const readHeaderTimeout = 5 * time.Second

// New builds the server for cfg. Request contexts carry the app logger, and
// errors net/http reports on its own (TLS handshakes, bad requests) go to it
// at warn level.
func New(cfg config.Config, handler http.Handler, log logger.Logger) *http.Server {
	serverLog := log.With("component", "http")
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ErrorLog:          logger.StdLog(serverLog, slog.LevelWarn),
		BaseContext: func(net.Listener) context.Context {
			return logger.NewContext(context.Background(), serverLog)
		},
	}
}
