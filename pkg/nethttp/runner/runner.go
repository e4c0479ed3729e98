package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

type Server interface {
	Serve(listener net.Listener) error
	Shutdown(ctx context.Context) error
}

// Options names a server and bounds its shutdown. Name prefixes errors and
// log lines so the public and metrics listeners can be told apart.
type Options struct {
	Name            string
	Addr            string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// RunServer listens on opts.Addr and serves until ctx is done, then shuts the
// server down within opts.ShutdownTimeout. It returns the bound address, so
// ":0" can be used to pick a free port. Serve and shutdown failures are sent
// to errChan; wgr tracks both goroutines.
func RunServer(ctx context.Context, server Server, opts Options, errChan chan<- error, wgr *sync.WaitGroup) (net.Addr, error) {
	return runServer(ctx, server, opts, errChan, wgr, net.Listen)
}

func runServer(
	ctx context.Context,
	server Server,
	opts Options,
	errChan chan<- error,
	wgr *sync.WaitGroup,
	listen func(string, string) (net.Listener, error),
) (net.Addr, error) {
	name := opts.Name
	if name == "" {
		name = "http"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	listener, err := listen("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("%s: can't listen tcp addr %s: %w", name, opts.Addr, err)
	}
	bound := listener.Addr()
	logger.Info("server listening", slog.String("server", name), slog.String("addr", addrString(bound, opts.Addr)))

	wgr.Add(2)

	go func() {
		defer wgr.Done()

		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("%s: can't serve: %w", name, err)
		}
	}()

	go func() {
		defer wgr.Done()

		<-ctx.Done()

		sdCtx := context.Background()
		if opts.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			sdCtx, cancel = context.WithTimeout(sdCtx, opts.ShutdownTimeout)
			defer cancel()
		}
		start := time.Now()
		if err := server.Shutdown(sdCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("%s: can't shutdown: %w", name, err)
			return
		}
		logger.Info("server stopped", slog.String("server", name), slog.Duration("took", time.Since(start)))
	}()

	return bound, nil
}

func addrString(a net.Addr, fallback string) string {
	if a == nil {
		return fallback
	}
	return a.String()
}
