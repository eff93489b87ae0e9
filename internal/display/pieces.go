package display

import "github.com/impodog/termichess/internal/chess"

var whiteGlyphs = map[chess.PieceKind]string{
	chess.King:   "♔",
	chess.Queen:  "♕",
	chess.Bishop: "♗",
	chess.Knight: "♘",
	chess.Rook:   "♖",
	chess.Pawn:   "♙",
}

var blackGlyphs = map[chess.PieceKind]string{
	chess.King:   "♚",
	chess.Queen:  "♛",
	chess.Bishop: "♝",
	chess.Knight: "♞",
	chess.Rook:   "♜",
	chess.Pawn:   "♟",
}

// glyph returns the unicode symbol of p, or "-" for a vacant square.
func glyph(p chess.Piece) string {
	if p.IsEmpty() {
		return "-"
	}
	if p.Colour == chess.White {
		return whiteGlyphs[p.Kind]
	}
	return blackGlyphs[p.Kind]
}

// letterCell renders p as three characters: the piece letter framed by
// ':' for White or '*' for Black. Vacant squares render as " - ".
func letterCell(p chess.Piece) string {
	if p.IsEmpty() {
		return " - "
	}
	frame := ":"
	if p.Colour == chess.Black {
		frame = "*"
	}
	return frame + string(p.Kind.Letter()) + frame
}

// glyphCell centres the glyph of p in a cell of the given width.
func glyphCell(p chess.Piece, width int) string {
	return pad(glyph(p), width)
}

// pad centres a single-column string in width columns, leaning left.
func pad(s string, width int) string {
	left := (width - 1) / 2
	right := width - 1 - left
	out := make([]byte, 0, width+len(s))
	for i := 0; i < left; i++ {
		out = append(out, ' ')
	}
	out = append(out, s...)
	for i := 0; i < right; i++ {
		out = append(out, ' ')
	}
	return string(out)
}
