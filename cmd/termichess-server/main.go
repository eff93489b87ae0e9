// termichess-server relays commands between the two players of remote games.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/impodog/termichess/internal/config"
	"github.com/impodog/termichess/internal/errors"
	"github.com/impodog/termichess/internal/logging"
	"github.com/impodog/termichess/internal/relay"
	"github.com/impodog/termichess/internal/store"
)

const shutdownTimeout = 5 * time.Second

var (
	configFile = flag.String("config", "", "Configuration file (default: ./"+config.DefaultFile+" if present)")
	addr       = flag.String("addr", "", "Listen address")
	storePath  = flag.String("store", "", "Badger directory for room boards (default: in memory)")
	roomTTL    = flag.Duration("ttl", 0, "Drop rooms idle for this long")
	logFile    = flag.String("log", "", "Log file (default: stderr)")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "store":
			cfg.Server.StorePath = *storePath
		case "ttl":
			cfg.Server.RoomTTL = config.Duration(*roomTTL)
		case "log":
			cfg.LogFile = *logFile
		case "v":
			cfg.Verbose = *verbose
		}
	})
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run returns only after the HTTP server and the sweeper have stopped, so
// its deferred closes never race a request still writing to the store.
func run() error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := store.Open(cfg.Server.StorePath, cfg.Server.RoomTTL.Duration())
	if err != nil {
		return err
	}
	defer st.Close()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return errors.Wrap(err, "listening")
	}

	srv := relay.NewServer(log, st, cfg.Server.RoomTTL.Duration())
	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	swept := make(chan struct{})
	go func() {
		defer close(swept)
		srv.Run(ctx, cfg.Server.SweepInterval.Duration())
	}()

	log.Info().
		Str("addr", ln.Addr().String()).
		Str("store", cfg.Server.StorePath).
		Dur("room_ttl", cfg.Server.RoomTTL.Duration()).
		Msg("relay listening")

	err = serve(ctx, httpServer, ln)
	stop()
	<-swept

	if err != nil {
		log.Error().Err(err).Msg("relay stopped")
		return err
	}
	log.Info().Int("rooms", srv.Rooms()).Msg("relay stopped")
	return nil
}

// serve runs hs on ln until ctx is cancelled. It returns once Shutdown has
// let every in-flight request finish.
func serve(ctx context.Context, hs *http.Server, ln net.Listener) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- hs.Shutdown(shutdown)
	}()

	if err := hs.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
