package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/desertthunder/mvx/internal/server"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web front end until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if host := cmd.String("host"); host != "" {
		r.config.Server.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		r.config.Server.Port = int(port)
	}

	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ready := make(chan string, 1)
	if cmd.Bool("open") {
		go func() {
			select {
			case addr := <-ready:
				if err := shared.OpenBrowser("http://" + addr); err != nil {
					r.logger.Warn("failed to open browser", "error", err)
				}
			case <-ctx.Done():
			}
		}()
	}

	if err := server.Serve(ctx, r.config.Server.Addr(), web.NewRouter(ctrl, r.logger), r.logger, ready); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
