package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"
)

// errTransportEnded cancels the run group when the transport finishes on
// its own, e.g. a stdio client closing its input.
var errTransportEnded = errors.New("transport ended")

// notify reports service state to systemd. It is a no-op outside a
// systemd unit with Type=notify.
var notify = func(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logging.Debug("Bootstrap", "sd_notify %q failed: %v", state, err)
		return
	}
	if sent {
		logging.Debug("Bootstrap", "sd_notify %q sent", state)
	}
}

// runServer runs the server lifecycle:
//
//  1. open the shared HTTP client
//  2. start the transport and report READY
//  3. wait for a signal, ctx cancellation or the end of the transport
//  4. report STOPPING, stop the transport and close the shared client
//
// The shared client is closed only after the transport has drained.
func runServer(ctx context.Context, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := services.Lifespan.Open(); err != nil {
		return fmt.Errorf("failed to open shared HTTP client: %w", err)
	}

	srv := services.Server
	if err := srv.Start(ctx); err != nil {
		logging.Error("Bootstrap", err, "Failed to start MCP server")
		_ = services.Lifespan.Close()
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	notify(daemon.SdNotifyReady)
	logging.Info("Bootstrap", "CourtListener MCP server ready (%d tools, transport %s)",
		services.Registry.Len()+1, services.Settings.Transport)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case err := <-srv.Done():
			if err != nil {
				return fmt.Errorf("transport failed: %w", err)
			}
			logging.Info("Bootstrap", "Transport closed by client")
			return errTransportEnded
		case <-gctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Bootstrap", "Shutting down")
		notify(daemon.SdNotifyStopping)

		stopErr := srv.Stop(context.Background())
		if err := services.Lifespan.Close(); err != nil {
			logging.Error("Bootstrap", err, "Failed to close shared HTTP client")
		}
		return stopErr
	})

	err := g.Wait()
	if errors.Is(err, errTransportEnded) {
		err = nil
	}
	logging.Info("Bootstrap", "Shutdown complete")
	return err
}
