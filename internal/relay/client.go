package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/impodog/termichess/internal/errors"
)

// Client talks to a relay server on behalf of one player.
type Client struct {
	base string
	http *http.Client

	// Room and Player are set by Login.
	Room   string
	Player Player
}

// NewClient creates a client for the relay at address. A nil hc uses
// http.DefaultClient.
func NewClient(address string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(address, "/"), http: hc}
}

// Login joins room, or a server-chosen room when room is empty.
func (c *Client) Login(ctx context.Context, room string) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.call(ctx, "/chess/login", LoginRequest{Room: room}, &resp); err != nil {
		return resp, err
	}
	c.Room = resp.Room
	c.Player = resp.Player
	return resp, nil
}

// Play sends a command and the board it produced.
func (c *Client) Play(ctx context.Context, cmd, board string) error {
	return c.call(ctx, "/chess/play", PlayRequest{Room: c.Room, Player: c.Player, Cmd: cmd, Board: board}, nil)
}

// Query collects the opponent's queued command. It returns ErrNotYourTurn
// or ErrNothingQueued while there is nothing to collect yet.
func (c *Client) Query(ctx context.Context) (string, error) {
	var resp QueryResponse
	if err := c.call(ctx, "/chess/query", QueryRequest{Room: c.Room, Player: c.Player}, &resp); err != nil {
		return "", err
	}
	return resp.Cmd, nil
}

// IsOK reports whether both players have joined.
func (c *Client) IsOK(ctx context.Context) (bool, error) {
	var resp IsOKResponse
	if err := c.call(ctx, "/chess/is_ok", IsOKRequest{Room: c.Room}, &resp); err != nil {
		return false, err
	}
	return resp.OK, nil
}

// LogBack fetches the last board stored for the room.
func (c *Client) LogBack(ctx context.Context) (string, error) {
	var resp LogBackResponse
	if err := c.call(ctx, "/chess/log_back", LogBackRequest{Room: c.Room, Player: c.Player}, &resp); err != nil {
		return "", err
	}
	return resp.Board, nil
}

// Logout closes the room.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, "/chess/logout", LogoutRequest{Room: c.Room}, nil)
}

func (c *Client) call(ctx context.Context, path string, req, resp interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	hreq.Header.Set("Content-Type", "application/json")

	hresp, err := c.http.Do(hreq)
	if err != nil {
		return fmt.Errorf("relay %s: %w", path, err)
	}
	defer hresp.Body.Close()

	if hresp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(hresp.Body).Decode(&e)
		return responseError(hresp.StatusCode, e)
	}
	if resp == nil {
		return nil
	}
	if err := json.NewDecoder(hresp.Body).Decode(resp); err != nil {
		return fmt.Errorf("relay %s: decoding response: %w", path, err)
	}
	return nil
}

// responseError maps a failed reply back to the matching sentinel.
func responseError(status int, e errorResponse) error {
	var sentinel error
	switch e.Code {
	case codeRoomNotFound:
		sentinel = errors.ErrRoomNotFound
	case codeNothing:
		sentinel = errors.ErrNothingQueued
	case codeRoomFull:
		sentinel = errors.ErrRoomFull
	case codeNotReady:
		sentinel = errors.ErrNotReady
	case codeNotYourTurn:
		sentinel = errors.ErrNotYourTurn
	default:
		switch status {
		case http.StatusNotFound:
			sentinel = errors.ErrRoomNotFound
		case http.StatusConflict:
			sentinel = errors.ErrRoomFull
		case http.StatusNotAcceptable:
			sentinel = errors.ErrNotReady
		case http.StatusLocked:
			sentinel = errors.ErrNotYourTurn
		default:
			return fmt.Errorf("relay: %s: %s", http.StatusText(status), e.Error)
		}
	}
	return errors.Wrapf(sentinel, "relay: %d", status)
}
