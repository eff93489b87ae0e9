// Package relay coordinates remote games. The server pairs two players in a
// room and passes their commands back and forth one at a time; it treats
// commands and boards as opaque strings.
package relay

import "github.com/impodog/termichess/internal/chess"

// Player identifies a seat in a room: true is White, false is Black.
type Player = bool

// Seat returns the colour of a player.
func Seat(p Player) chess.Colour {
	if p {
		return chess.White
	}
	return chess.Black
}

type LoginRequest struct {
	Room string `json:"room"`
}

type LoginResponse struct {
	Room   string `json:"room"`
	Player Player `json:"player"`
}

type PlayRequest struct {
	Room   string `json:"room"`
	Player Player `json:"player"`
	Cmd    string `json:"cmd"`
	Board  string `json:"board"`
}

type QueryRequest struct {
	Room   string `json:"room"`
	Player Player `json:"player"`
}

type QueryResponse struct {
	Cmd string `json:"cmd"`
}

type IsOKRequest struct {
	Room string `json:"room"`
}

type IsOKResponse struct {
	OK bool `json:"ok"`
}

type LogBackRequest struct {
	Room   string `json:"room"`
	Player Player `json:"player"`
}

type LogBackResponse struct {
	Board string `json:"board"`
}

type LogoutRequest struct {
	Room string `json:"room"`
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Error codes carried in errorResponse.
const (
	codeBadRequest   = "bad_request"
	codeRoomNotFound = "room_not_found"
	codeRoomFull     = "room_full"
	codeNotReady     = "not_ready"
	codeNotYourTurn  = "not_your_turn"
	codeNothing      = "nothing_queued"
	codeInternal     = "internal"
)
