// termichess plays chess in the terminal, hot-seat or through a relay server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/config"
	"github.com/impodog/termichess/internal/display"
	"github.com/impodog/termichess/internal/engine"
	"github.com/impodog/termichess/internal/errors"
	"github.com/impodog/termichess/internal/logging"
	"github.com/impodog/termichess/internal/play"
	"github.com/impodog/termichess/internal/relay"
	"github.com/impodog/termichess/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("termichess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fatal(err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if !logging.IsTerminal(os.Stdout) {
		cfg.Display.Color = false
	}

	log, closer, err := logging.Open(cfg.LogFile, cfg.Verbose)
	if err != nil {
		fatal(err)
	}
	defer closer.Close()

	pool := worker.NewPool(runtime.NumCPU(), 64)
	pool.Start()
	defer pool.Close()

	eng := engine.New(pool)
	view := display.NewRenderer(cfg.Display)

	ctx := context.Background()

	var b *chess.Board
	if *remote || *resume {
		b, err = playRemote(ctx, log, cfg, eng, view)
	} else {
		b, err = play.NewLocal(eng, view, os.Stdin, os.Stdout, cfg.Display.Flip).Run(ctx)
	}

	switch {
	case errors.Is(err, io.EOF):
		fmt.Println()
	case err != nil:
		log.Error().Err(err).Msg("game aborted")
		fatal(err)
	default:
		log.Info().Str("result", b.Status.String()).Int("turn", b.Turn).Msg("game finished")
	}
}

func playRemote(ctx context.Context, log zerolog.Logger, cfg *config.Config, eng *engine.Engine, view *display.Renderer) (*chess.Board, error) {
	conn := relay.NewClient(cfg.Client.Address, nil)

	if *resume {
		conn.Room = cfg.Client.Room
		conn.Player = *white
		s := play.NewRemote(eng, view, conn, relay.Seat(conn.Player), os.Stdin, os.Stdout, pollInterval(cfg))
		return s.Resume(ctx, cfg.Client.ReconnectTimeout.Duration())
	}

	resp, err := conn.Login(ctx, cfg.Client.Room)
	if err != nil {
		return nil, fmt.Errorf("joining room: %w", err)
	}
	me := relay.Seat(resp.Player)
	log.Info().Str("room", resp.Room).Str("colour", me.String()).Msg("joined room")
	view.Welcome(os.Stdout, resp.Room, me)

	s := play.NewRemote(eng, view, conn, me, os.Stdin, os.Stdout, pollInterval(cfg))
	b, err := s.Run(ctx)
	if err == nil || errors.Is(err, io.EOF) {
		return b, err
	}

	// Connection trouble: the room keeps the last board, so try to pick
	// the game up again.
	log.Warn().Err(err).Msg("lost relay connection, reconnecting")
	fmt.Println("Attempting to reconnect to the server...")
	return s.Resume(ctx, cfg.Client.ReconnectTimeout.Duration())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: termichess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess in the terminal.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nCommands during a game:\n")
	fmt.Fprintf(os.Stderr, "  e4, Nf3, exd5, e8=Q  moves in short algebraic notation\n")
	fmt.Fprintf(os.Stderr, "  g1f3                 moves by origin and target square\n")
	fmt.Fprintf(os.Stderr, "  00, 000              castle king side, queen side\n")
	fmt.Fprintf(os.Stderr, "  moves                list legal moves\n")
	fmt.Fprintf(os.Stderr, "  draw                 offer or accept a draw\n")
	fmt.Fprintf(os.Stderr, "  resign               give up (also quit, exit)\n")
	fmt.Fprintf(os.Stderr, "  chat <message>       message the opponent in remote games\n")
}
