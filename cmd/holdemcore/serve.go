package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/holdemcore/internal/server"
)

// ServeCmd runs the WebSocket table server.
type ServeCmd struct {
	Config string `kong:"default='holdemcore.hcl',help='HCL config file; defaults apply when missing'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cfg, quartz.NewReal(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		srv.Shutdown()
	}()

	logger.Info("Starting server",
		"addr", cfg.ListenAddress(),
		"tables", len(cfg.Tables),
		"bots", len(cfg.Bots))
	return srv.ListenAndServe()
}
