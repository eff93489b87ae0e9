// Package command turns raw input lines into game commands.
package command

import "strings"

// Kind identifies the action a line asks for.
type Kind int

const (
	// Move carries move notation in Text.
	Move Kind = iota
	// Resign gives up the game.
	Resign
	// Draw offers a draw, or accepts a pending offer.
	Draw
	// Chat carries a message for the opponent in Text.
	Chat
	// Moves lists the legal moves of the side to move.
	Moves
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Resign:
		return "resign"
	case Draw:
		return "draw"
	case Chat:
		return "chat"
	case Moves:
		return "moves"
	}
	return "unknown"
}

// Command is a parsed input line.
type Command struct {
	Kind Kind
	Text string
}

// chatPrefix introduces a chat message.
const chatPrefix = "chat"

// Parse interprets a line of user input. Anything that is not a keyword
// is treated as move notation and reduced to the characters notation uses.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	switch line {
	case "resign", "quit", "exit":
		return Command{Kind: Resign}
	case "draw":
		return Command{Kind: Draw}
	case "moves", "help":
		return Command{Kind: Moves}
	}
	if IsChat(line) {
		return Command{Kind: Chat, Text: strings.TrimSpace(line[len(chatPrefix):])}
	}
	return Command{Kind: Move, Text: filterNotation(line)}
}

// IsChat reports whether a line is a chat message. The relay uses it to
// hand the turn back to the sender.
func IsChat(line string) bool {
	return strings.HasPrefix(line, chatPrefix) && len(line) > len(chatPrefix)
}

func filterNotation(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'h', c >= '0' && c <= '8':
			sb.WriteByte(c)
		case c == 'Q', c == 'R', c == 'B', c == 'N', c == 'K', c == 'x', c == '=':
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
