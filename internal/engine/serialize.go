package engine

import (
	"strconv"
	"strings"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/errors"
)

// Serialize encodes b as a five-field record:
//
//	squares/moves/turn/status/draw
//
// Squares are listed file by file (a1, a2, ... h8), each as kind letter,
// colour letter and last-moved turn ("Pw0"), or "-" when vacant. Moves are
// four characters each ("e2e4"); promotion kinds are not recorded.
func Serialize(b *chess.Board) string {
	var sb strings.Builder

	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			writePiece(&sb, b.Squares[file][rank])
		}
	}
	sb.WriteByte('/')

	for _, mv := range b.Moves {
		sb.WriteString(mv.From.String())
		sb.WriteString(mv.To.String())
	}
	sb.WriteByte('/')

	sb.WriteString(strconv.Itoa(b.Turn))
	sb.WriteByte('/')
	sb.WriteByte(b.Status.Letter())
	sb.WriteByte('/')
	if b.DrawOffer {
		sb.WriteByte('t')
	} else {
		sb.WriteByte('f')
	}

	return sb.String()
}

func writePiece(sb *strings.Builder, p chess.Piece) {
	if p.IsEmpty() {
		sb.WriteByte('-')
		return
	}
	sb.WriteByte(p.Kind.Letter())
	sb.WriteByte(p.Colour.Letter())
	sb.WriteString(strconv.Itoa(p.Moved))
}

// Deserialize rebuilds a board from a record produced by Serialize.
// The grid is taken from the record rather than replayed from the moves;
// the moves only feed en passant detection. Malformed records fail with an
// error wrapping errors.ErrInvalidRecord.
func (e *Engine) Deserialize(s string) (*chess.Board, error) {
	fields := strings.Split(s, "/")
	if len(fields) != 5 {
		return nil, &errors.RecordError{Field: "record", Value: s}
	}

	b := chess.NewBoard()
	if err := readSquares(b, fields[0]); err != nil {
		return nil, err
	}
	if err := readMoves(b, fields[1]); err != nil {
		return nil, err
	}

	turn, err := strconv.Atoi(fields[2])
	if err != nil || !isDigits(fields[2]) || turn < 1 {
		return nil, &errors.RecordError{Field: "turn", Value: fields[2]}
	}
	b.Turn = turn

	if len(fields[3]) != 1 {
		return nil, &errors.RecordError{Field: "status", Value: fields[3]}
	}
	status, ok := chess.ParseStatus(fields[3][0])
	if !ok {
		return nil, &errors.RecordError{Field: "status", Value: fields[3]}
	}
	b.Status = status

	switch fields[4] {
	case "t":
		b.DrawOffer = true
	case "f":
		b.DrawOffer = false
	default:
		return nil, &errors.RecordError{Field: "draw", Value: fields[4]}
	}

	Update(b)
	e.UpdateMate(b)
	return b, nil
}

// readSquares reads one piece per square. A piece runs from its kind letter
// up to the next uppercase letter or '-'.
func readSquares(b *chess.Board, field string) error {
	pos := 0
	for i := 0; i < chess.BoardSize*chess.BoardSize; i++ {
		if pos >= len(field) {
			return &errors.RecordError{Field: "squares", Value: field}
		}

		end := pos + 1
		if field[pos] != '-' {
			for end < len(field) && field[end] != '-' && !isUpper(field[end]) {
				end++
			}
		}

		piece, ok := readPiece(field[pos:end])
		if !ok {
			return &errors.RecordError{Field: "squares", Value: field[pos:end]}
		}
		b.Squares[i/chess.BoardSize][i%chess.BoardSize] = piece
		pos = end
	}
	if pos != len(field) {
		return &errors.RecordError{Field: "squares", Value: field[pos:]}
	}
	return nil
}

func readPiece(s string) (chess.Piece, bool) {
	if s == "-" {
		return chess.EmptyPiece(), true
	}
	if len(s) < 3 {
		return chess.Piece{}, false
	}
	kind, ok := chess.ParsePieceKind(s[0])
	if !ok {
		return chess.Piece{}, false
	}
	colour, ok := chess.ParseColour(s[1])
	if !ok {
		return chess.Piece{}, false
	}
	moved, err := strconv.Atoi(s[2:])
	if err != nil || !isDigits(s[2:]) {
		return chess.Piece{}, false
	}
	return chess.Piece{Kind: kind, Colour: colour, Moved: moved}, true
}

func readMoves(b *chess.Board, field string) error {
	if len(field)%4 != 0 {
		return &errors.RecordError{Field: "moves", Value: field}
	}
	for i := 0; i < len(field); i += 4 {
		from, ok := chess.ParseSquare(field[i : i+2])
		if !ok {
			return &errors.RecordError{Field: "moves", Value: field[i : i+4]}
		}
		to, ok := chess.ParseSquare(field[i+2 : i+4])
		if !ok {
			return &errors.RecordError{Field: "moves", Value: field[i : i+4]}
		}
		b.Moves = append(b.Moves, chess.NewMove(from, to))
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
