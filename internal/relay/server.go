package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/rs/zerolog"

	"github.com/impodog/termichess/internal/command"
	"github.com/impodog/termichess/internal/errors"
	"github.com/impodog/termichess/internal/store"
)

// room is the relay state of one game.
type room struct {
	// turn is the player allowed to play next.
	turn Player
	// chat is set when the queued command is a chat message.
	chat   bool
	joined int

	queued   bool
	cmd      string
	lastUsed time.Time
}

// Server is the relay HTTP server.
type Server struct {
	mu    sync.Mutex
	rooms map[string]*room

	store *store.Store
	log   zerolog.Logger
	ttl   time.Duration

	now   func() time.Time
	names func() string
}

// NewServer creates a relay server. Rooms idle for longer than ttl are
// dropped by Sweep.
func NewServer(log zerolog.Logger, st *store.Store, ttl time.Duration) *Server {
	return &Server{
		rooms: make(map[string]*room),
		store: st,
		log:   log,
		ttl:   ttl,
		now:   time.Now,
		names: func() string { return petname.Generate(2, "-") },
	}
}

// Handler returns the HTTP handler serving the relay API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/chess/login", post(s.login))
	mux.HandleFunc("/chess/play", post(s.play))
	mux.HandleFunc("/chess/query", post(s.query))
	mux.HandleFunc("/chess/is_ok", post(s.isOK))
	mux.HandleFunc("/chess/log_back", post(s.logBack))
	mux.HandleFunc("/chess/logout", post(s.logout))

	return RequestID(AccessLog(s.log, mux))
}

// Rooms returns the number of open rooms.
func (s *Server) Rooms() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Sweep drops rooms idle for longer than the TTL together with their
// stored boards, and returns how many were dropped.
func (s *Server) Sweep() int {
	s.mu.Lock()
	now := s.now()
	var expired []string
	for name, r := range s.rooms {
		if now.Sub(r.lastUsed) >= s.ttl {
			delete(s.rooms, name)
			expired = append(expired, name)
		}
	}
	s.mu.Unlock()

	for _, name := range expired {
		if err := s.store.Delete(name); err != nil {
			s.log.Error().Err(err).Str("room", name).Msg("deleting expired board")
		}
		s.log.Info().Str("room", name).Msg("room expired")
	}
	return len(expired)
}

// Run sweeps expired rooms every interval until ctx is cancelled.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// post adapts a JSON handler to http.HandlerFunc, rejecting other methods
// and undecodable bodies.
func post[Req any](h func(ctx context.Context, req Req) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: codeBadRequest, Error: "invalid JSON body"})
			return
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			status, code := classify(err)
			writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// classify maps relay errors to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errors.ErrRoomNotFound):
		return http.StatusNotFound, codeRoomNotFound
	case errors.Is(err, errors.ErrNothingQueued):
		return http.StatusNotFound, codeNothing
	case errors.Is(err, errors.ErrRoomFull):
		return http.StatusConflict, codeRoomFull
	case errors.Is(err, errors.ErrNotReady):
		return http.StatusNotAcceptable, codeNotReady
	case errors.Is(err, errors.ErrNotYourTurn):
		return http.StatusLocked, codeNotYourTurn
	}
	return http.StatusInternalServerError, codeInternal
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// lookup returns the named room and marks it used. Callers hold s.mu.
func (s *Server) lookup(name string) (*room, error) {
	r, ok := s.rooms[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrRoomNotFound, "room %q", name)
	}
	r.lastUsed = s.now()
	return r, nil
}

// freshName picks a generated room name not currently in use. Callers hold s.mu.
func (s *Server) freshName() string {
	for {
		name := s.names()
		if _, taken := s.rooms[name]; !taken {
			return name
		}
	}
}

func (s *Server) login(ctx context.Context, req LoginRequest) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := req.Room
	if name == "" {
		name = s.freshName()
	}
	log := requestLogger(ctx, s.log).With().Str("room", name).Logger()

	r, ok := s.rooms[name]
	if !ok {
		s.rooms[name] = &room{turn: true, joined: 1, lastUsed: s.now()}
		log.Info().Msg("room created")
		return LoginResponse{Room: name, Player: true}, nil
	}

	r.lastUsed = s.now()
	switch r.joined {
	case 0:
		r.joined++
		log.Info().Msg("player joined")
		return LoginResponse{Room: name, Player: true}, nil
	case 1:
		r.joined++
		log.Info().Msg("player joined")
		return LoginResponse{Room: name, Player: false}, nil
	}
	log.Warn().Msg("room is full")
	return nil, errors.Wrapf(errors.ErrRoomFull, "room %q", name)
}

func (s *Server) play(ctx context.Context, req PlayRequest) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := requestLogger(ctx, s.log).With().Str("room", req.Room).Logger()
	r, err := s.lookup(req.Room)
	if err != nil {
		return nil, err
	}
	if r.joined < 2 {
		return nil, errors.Wrapf(errors.ErrNotReady, "room %q", req.Room)
	}
	if r.turn != req.Player || r.queued {
		return nil, errors.Wrapf(errors.ErrNotYourTurn, "room %q", req.Room)
	}

	if req.Board != "" {
		if err := s.store.Save(req.Room, req.Board); err != nil {
			log.Error().Err(err).Msg("saving board")
			return nil, err
		}
	}

	r.chat = command.IsChat(req.Cmd)
	r.turn = !r.turn
	r.queued = true
	r.cmd = req.Cmd
	log.Debug().Bool("chat", r.chat).Msg("command queued")
	return struct{}{}, nil
}

func (s *Server) query(ctx context.Context, req QueryRequest) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.lookup(req.Room)
	if err != nil {
		return nil, err
	}
	if r.joined < 2 {
		return nil, errors.Wrapf(errors.ErrNotReady, "room %q", req.Room)
	}
	if r.turn != req.Player {
		return nil, errors.Wrapf(errors.ErrNotYourTurn, "room %q", req.Room)
	}
	if !r.queued {
		return nil, errors.Wrapf(errors.ErrNothingQueued, "room %q", req.Room)
	}

	cmd := r.cmd
	r.queued = false
	r.cmd = ""
	if r.chat {
		r.turn = !r.turn
		r.chat = false
	}
	return QueryResponse{Cmd: cmd}, nil
}

func (s *Server) isOK(ctx context.Context, req IsOKRequest) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.lookup(req.Room)
	if err != nil {
		return nil, err
	}
	return IsOKResponse{OK: r.joined == 2}, nil
}

func (s *Server) logBack(ctx context.Context, req LogBackRequest) (any, error) {
	s.mu.Lock()
	if r, ok := s.rooms[req.Room]; ok {
		r.lastUsed = s.now()
	}
	s.mu.Unlock()

	snap, err := s.store.Load(req.Room)
	if err != nil {
		return nil, err
	}
	log := requestLogger(ctx, s.log)
	log.Info().Str("room", req.Room).Msg("player logged back")
	return LogBackResponse{Board: snap.Board}, nil
}

func (s *Server) logout(ctx context.Context, req LogoutRequest) (any, error) {
	s.mu.Lock()
	_, ok := s.rooms[req.Room]
	delete(s.rooms, req.Room)
	s.mu.Unlock()

	if !ok {
		return nil, errors.Wrapf(errors.ErrRoomNotFound, "room %q", req.Room)
	}
	if err := s.store.Delete(req.Room); err != nil {
		return nil, err
	}
	log := requestLogger(ctx, s.log)
	log.Info().Str("room", req.Room).Msg("room closed")
	return struct{}{}, nil
}
