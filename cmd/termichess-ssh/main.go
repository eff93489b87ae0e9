// termichess-ssh serves hot-seat games to ssh clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/impodog/termichess/internal/config"
	"github.com/impodog/termichess/internal/display"
	"github.com/impodog/termichess/internal/engine"
	"github.com/impodog/termichess/internal/errors"
	"github.com/impodog/termichess/internal/logging"
	"github.com/impodog/termichess/internal/play"
	"github.com/impodog/termichess/internal/worker"
)

const (
	idleTimeout     = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

var (
	configFile = flag.String("config", "", "Configuration file (default: ./"+config.DefaultFile+" if present)")
	addr       = flag.String("addr", "", "Listen address")
	hostKey    = flag.String("hostkey", "", "PEM host key file (default: generated per start)")
	logFile    = flag.String("log", "", "Log file (default: stderr)")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.SSH.Addr = *addr
		case "hostkey":
			cfg.SSH.HostKeyFile = *hostKey
		case "log":
			cfg.LogFile = *logFile
		case "v":
			cfg.Verbose = *verbose
		}
	})
}

// lineReader feeds edited terminal lines to a line scanner.
type lineReader struct {
	t       *term.Terminal
	pending []byte
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		line, err := r.t.ReadLine()
		if err != nil {
			return 0, err
		}
		r.pending = []byte(line + "\n")
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// sessionIO picks the streams a game reads and writes. Pty sessions get
// line editing and colour; plain sessions are used as they are.
func sessionIO(s io.ReadWriter, isPty bool) (io.Reader, io.Writer) {
	if !isPty {
		return s, s
	}
	t := term.NewTerminal(s, "")
	return &lineReader{t: t}, t
}

type handler struct {
	log zerolog.Logger
	eng *engine.Engine
	cfg config.DisplayConfig

	sessions sync.WaitGroup
}

// track counts next's running sessions so wait can block until all of them
// have returned.
func (h *handler) track(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		h.sessions.Add(1)
		defer h.sessions.Done()
		next(s)
	}
}

func (h *handler) wait() {
	h.sessions.Wait()
}

func (h *handler) serve(s ssh.Session) {
	_, _, isPty := s.Pty()
	log := h.log.With().
		Str("user", s.User()).
		Str("remote", s.RemoteAddr().String()).
		Bool("pty", isPty).
		Logger()
	log.Info().Msg("session opened")

	cfg := h.cfg
	cfg.Color = cfg.Color && isPty
	in, out := sessionIO(s, isPty)

	b, err := play.NewLocal(h.eng, display.NewRenderer(cfg), in, out, cfg.Flip).Run(s.Context())
	switch {
	case err == nil:
		log.Info().Str("result", b.Status.String()).Int("turn", b.Turn).Msg("session finished")
		_ = s.Exit(0)
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		log.Info().Msg("session closed by client")
		_ = s.Exit(0)
	default:
		log.Warn().Err(err).Msg("session aborted")
		fmt.Fprintf(out, "Error: %v\n", err)
		_ = s.Exit(1)
	}
}

// serve runs srv on ln until ctx is cancelled. Sessions get timeout to
// finish; connections still open after that are closed.
func serve(ctx context.Context, srv *ssh.Server, ln net.Listener, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := srv.Shutdown(shutdown)
		if errors.Is(err, context.DeadlineExceeded) {
			err = srv.Close()
		}
		done <- err
	}()

	if err := srv.Serve(ln); !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return <-done
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run returns after every session has ended, so the mate pool is closed
// only once nothing can submit to it.
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

	var exec worker.Executor = worker.Inline{}
	if cfg.Server.Workers > 0 {
		pool := worker.NewPoolWithOptions(worker.WithWorkers(cfg.Server.Workers), worker.WithBufferSize(64))
		pool.Start()
		defer func() {
			pool.Close()
			log.Info().Int64("trials", pool.Processed()).Msg("mate pool closed")
		}()
		exec = pool
	}

	h := &handler{log: log, eng: engine.New(exec), cfg: cfg.Display}
	srv := &ssh.Server{
		Handler:     h.track(h.serve),
		IdleTimeout: idleTimeout,
	}
	if cfg.SSH.HostKeyFile != "" {
		if err := srv.SetOption(ssh.HostKeyFile(cfg.SSH.HostKeyFile)); err != nil {
			return errors.Wrap(err, "loading host key")
		}
	}

	ln, err := net.Listen("tcp", cfg.SSH.Addr)
	if err != nil {
		return errors.Wrap(err, "listening")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", ln.Addr().String()).Int("workers", cfg.Server.Workers).Msg("ssh listening")

	err = serve(ctx, srv, ln, shutdownTimeout)
	stop()
	h.wait()

	if err != nil {
		log.Error().Err(err).Msg("ssh server stopped")
		return err
	}
	log.Info().Msg("ssh server stopped")
	return nil
}
