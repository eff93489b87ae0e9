package engine

import (
	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/errors"
)

// notation is the lexical form of a move string before it is resolved
// against a board.
type notation struct {
	piece     chess.PieceKind
	from      *chess.Square
	take      bool
	to        chess.Square
	promotion chess.PieceKind
	promoted  bool // an '=' suffix was present
}

// Translate resolves a short move string against b.
//
// Accepted forms are "00" and "000" for castling, or
//
//	[piece] [origin] [x] destination [=promotion]
//
// where the piece letter is one of K Q B N R (pawn when omitted), and the
// origin and destination are either a square such as "e4" or a single
// file letter or rank digit naming the only friendly piece of that kind
// on the line. Failures are returned as *errors.NotationError.
func (e *Engine) Translate(b *chess.Board, text string) (chess.Move, error) {
	n, err := split(b, text)
	if err != nil {
		return chess.Move{}, err
	}
	colour := b.SideToMove()

	var from chess.Square
	if n.from != nil {
		from = *n.from
		piece := b.Get(from)
		if !piece.IsFriend(colour) || (n.piece != chess.Pawn && piece.Kind != n.piece) {
			return chess.Move{}, errors.NewNotationError(errors.NoCandidate, text,
				"no %s %s on %s", colour, n.piece, from)
		}
		if !b.ReachableFrom(from).Has(n.to) {
			return chess.Move{}, errors.NewNotationError(errors.NoCandidate, text,
				"the piece on %s cannot move to %s", from, n.to)
		}
	} else {
		found := false
		for file := 0; file < chess.BoardSize; file++ {
			for rank := 0; rank < chess.BoardSize; rank++ {
				sq := chess.Square{File: file, Rank: rank}
				piece := b.Get(sq)
				if !piece.IsFriend(colour) || piece.Kind != n.piece || !b.ReachableFrom(sq).Has(n.to) {
					continue
				}
				if found {
					return chess.Move{}, errors.NewNotationError(errors.AmbiguousOrigin, text,
						"ambiguous move, please specify the source square")
				}
				from, found = sq, true
			}
		}
		if !found {
			return chess.Move{}, errors.NewNotationError(errors.NoCandidate, text,
				"no piece can move to %s", n.to)
		}
	}

	target := b.Get(n.to)
	if n.take && !target.IsEnemy(colour) {
		return chess.Move{}, errors.NewNotationError(errors.CaptureMismatch, text,
			"no piece to take on %s, remove 'x' from the notation", n.to)
	}
	if !n.take && !target.IsEmpty() {
		return chess.Move{}, errors.NewNotationError(errors.CaptureMismatch, text,
			"%s is not empty, add 'x' to take the piece", n.to)
	}

	piece := b.Get(from)
	lastRank := n.to.Rank == 0 || n.to.Rank == chess.BoardSize-1
	if n.promoted {
		if piece.Kind != chess.Pawn {
			return chess.Move{}, errors.NewNotationError(errors.PromotionNotAllowed, text,
				"only pawns can be promoted")
		}
		if !lastRank {
			return chess.Move{}, errors.NewNotationError(errors.PromotionNotAllowed, text,
				"pawns can only be promoted on the last rank, remove '=...' from the notation")
		}
		mv, ok := chess.NewPromotion(from, n.to, n.promotion)
		if !ok {
			return chess.Move{}, errors.NewNotationError(errors.InvalidPromotion, text,
				"cannot promote to %s", n.promotion)
		}
		return mv, nil
	}
	if piece.Kind == chess.Pawn && lastRank {
		return chess.Move{}, errors.NewNotationError(errors.PromotionRequired, text,
			"pawns must be promoted on the last rank, add '=Q' (or R, B, N) to the notation")
	}
	return chess.NewMove(from, n.to), nil
}

// split parses text into its lexical parts. Shortcut squares are resolved
// against b here since they depend on the piece kind.
func split(b *chess.Board, text string) (notation, error) {
	home := chess.HomeRank(b.SideToMove())
	switch text {
	case "00", "000":
		to := kingsideTarget
		if text == "000" {
			to = queensideTarget
		}
		from := chess.Square{File: kingFile, Rank: home}
		return notation{piece: chess.King, from: &from, to: chess.Square{File: to, Rank: home}}, nil
	}

	n := notation{piece: chess.Pawn}
	if text == "" {
		return n, errors.NewNotationError(errors.MissingPiece, text, "piece code required")
	}

	cur := 0
	if c := text[0]; c >= 'A' && c <= 'Z' {
		kind, ok := chess.ParsePieceKind(c)
		if !ok {
			return n, errors.NewNotationError(errors.InvalidPiece, text, "invalid piece code %c", c)
		}
		n.piece = kind
		cur++
	}

	first, next, err := squareAt(b, text, cur, n.piece, true)
	if err != nil {
		return n, err
	}
	cur = next

	if cur < len(text) && text[cur] == 'x' {
		n.take = true
		cur++
	}

	second, next, err := squareAt(b, text, cur, n.piece, false)
	if err != nil {
		return n, err
	}
	cur = next

	switch {
	case first != nil && second != nil:
		n.from, n.to = first, *second
	case first != nil:
		n.to = *first
	case second != nil:
		n.to = *second
	default:
		return n, errors.NewNotationError(errors.MissingTarget, text, "target square is not specified")
	}

	if cur < len(text) && text[cur] == '=' {
		cur++
		if cur >= len(text) {
			return n, errors.NewNotationError(errors.InvalidPromotion, text, "promotion code is missing")
		}
		kind, ok := chess.ParsePieceKind(text[cur])
		if !ok {
			return n, errors.NewNotationError(errors.InvalidPromotion, text, "invalid promotion code %c", text[cur])
		}
		n.promotion, n.promoted = kind, true
		cur++
	}

	if cur < len(text) {
		return n, errors.NewNotationError(errors.InvalidSquare, text, "unexpected %q", text[cur:])
	}
	return n, nil
}

// squareAt reads a square or a shortcut starting at text[cur]. It returns
// nil when no square starts there. Rank shortcuts are only read in the
// origin position, where they cannot be confused with a destination.
func squareAt(b *chess.Board, text string, cur int, kind chess.PieceKind, origin bool) (*chess.Square, int, error) {
	if cur >= len(text) {
		return nil, cur, nil
	}
	c := text[cur]

	switch {
	case c >= 'a' && c <= 'h':
		if cur+1 >= len(text) {
			return nil, cur, errors.NewNotationError(errors.IncompleteSquare, text, "incomplete square code %c", c)
		}
		r := text[cur+1]
		switch {
		case r >= '1' && r <= '8':
			sq, _ := chess.ParseSquare(text[cur : cur+2])
			return &sq, cur + 2, nil
		case r == '0' || r == '9':
			return nil, cur, errors.NewNotationError(errors.InvalidSquare, text, "invalid square code %s", text[cur:cur+2])
		}
		return shortcut(b, text, cur, kind)
	case origin && c >= '1' && c <= '8':
		return shortcut(b, text, cur, kind)
	}
	return nil, cur, nil
}

func shortcut(b *chess.Board, text string, cur int, kind chess.PieceKind) (*chess.Square, int, error) {
	sq, ok := b.FindShortcut(text[cur], kind)
	if !ok {
		return nil, cur, errors.NewNotationError(errors.AmbiguousShortcut, text,
			"shortcut %c cannot be resolved, it either is ambiguous or does not exist", text[cur])
	}
	return &sq, cur + 1, nil
}
