// Package position wraps the two disk masks of an Othello position and
// classifies the state of the game.
package position

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
)

var (
	ErrOverlappingDisks = errors.New("white and black share a square")
	ErrBadPositionText  = errors.New("badly formatted position")
)

// Side is the player entitled to place the next disk.
type Side uint8

const (
	Black Side = iota
	White
)

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return s ^ 1
}

// IsWhite is the boolean form used by the bitboard functions.
func (s Side) IsWhite() bool {
	return s == White
}

// SideFromString accepts "w", "white", "b" or "black" in any case.
func SideFromString(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return Black, fmt.Errorf("unknown side %q", s)
}

// Position is a pair of disk masks. The masks are expected to be
// disjoint; nothing in this package enforces that except Validate.
type Position struct {
	White uint64
	Black uint64
}

// Start returns the standard opening position: white on d4 and e5, black
// on e4 and d5. Black moves first.
func Start() Position {
	return Position{
		White: 1<<27 | 1<<36,
		Black: 1<<28 | 1<<35,
	}
}

// Validate reports ErrOverlappingDisks if a square is owned by both sides.
func (p Position) Validate() error {
	if both := p.White & p.Black; both != 0 {
		sqs := make([]string, 0, bitboard.Count(both))
		for _, idx := range bitboard.Squares(both) {
			sqs = append(sqs, move.IndexToAlgebraic(idx))
		}
		return fmt.Errorf("%w: %s", ErrOverlappingDisks, strings.Join(sqs, " "))
	}
	return nil
}

// MeOpp returns the mover's mask followed by the opponent's.
func (p Position) MeOpp(s Side) (uint64, uint64) {
	if s == White {
		return p.White, p.Black
	}
	return p.Black, p.White
}

// Disks returns the mask of the given side.
func (p Position) Disks(s Side) uint64 {
	me, _ := p.MeOpp(s)
	return me
}

func (p Position) Occupied() uint64 { return p.White | p.Black }
func (p Position) Empty() uint64    { return ^(p.White | p.Black) }

// Count returns the number of disks of the given side.
func (p Position) Count(s Side) int {
	return bitboard.Count(p.Disks(s))
}

// Moves returns the legal move mask of the given side.
func (p Position) Moves(s Side) uint64 {
	me, opp := p.MeOpp(s)
	return bitboard.ComputeMoves(me, opp)
}

// Apply plays m for side s through the validated path.
func (p Position) Apply(m uint64, s Side) (Position, error) {
	w, b, err := bitboard.ApplyMove(p.White, p.Black, m, s.IsWhite())
	if err != nil {
		return p, err
	}
	return Position{White: w, Black: b}, nil
}

// ApplyUnchecked plays m for side s with no validation. m must come from
// Moves(s).
func (p Position) ApplyUnchecked(m uint64, s Side) Position {
	w, b := bitboard.ApplyMoveUnchecked(p.White, p.Black, m, s.IsWhite())
	return Position{White: w, Black: b}
}

// Transform maps both masks through a board symmetry.
func (p Position) Transform(sym bitboard.Symmetry) Position {
	return Position{White: sym.Apply(p.White), Black: sym.Apply(p.Black)}
}

// Normalize returns the smallest of the eight symmetric images of p,
// ordered by (White, Black), and the symmetry that produces it.
func (p Position) Normalize() (Position, bitboard.Symmetry) {
	best, bestSym := p, bitboard.Identity
	for sym := bitboard.Identity + 1; sym < bitboard.NumSymmetries; sym++ {
		q := p.Transform(sym)
		if q.White < best.White || (q.White == best.White && q.Black < best.Black) {
			best, bestSym = q, sym
		}
	}
	return best, bestSym
}

// Hash returns a 64-bit digest of the two masks.
func (p Position) Hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], p.White)
	binary.LittleEndian.PutUint64(buf[8:], p.Black)
	return xxhash.Sum64(buf[:])
}

// HashWithSide is Hash with the side to move folded in.
func (p Position) HashWithSide(s Side) uint64 {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[:8], p.White)
	binary.LittleEndian.PutUint64(buf[8:16], p.Black)
	buf[16] = byte(s)
	return xxhash.Sum64(buf[:])
}

// String renders the masks as 32 hex digits, white first.
func (p Position) String() string {
	return fmt.Sprintf("%016x%016x", p.White, p.Black)
}

// Parse reads the String form back. The result is validated.
func Parse(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if len(s) != 32 {
		return Position{}, fmt.Errorf("%w: want 32 hex digits, got %d characters",
			ErrBadPositionText, len(s))
	}
	white, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: white: %w", ErrBadPositionText, err)
	}
	black, err := strconv.ParseUint(s[16:], 16, 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: black: %w", ErrBadPositionText, err)
	}
	p := Position{White: white, Black: black}
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// StringWithSide appends the side to move as "-w" or "-b".
func (p Position) StringWithSide(s Side) string {
	if s == White {
		return p.String() + "-w"
	}
	return p.String() + "-b"
}

// ParseWithSide reads the StringWithSide form.
func ParseWithSide(s string) (Position, Side, error) {
	s = strings.TrimSpace(s)
	if len(s) != 34 || s[32] != '-' {
		return Position{}, Black, fmt.Errorf("%w: want 32 hex digits followed by -w or -b",
			ErrBadPositionText)
	}
	side, err := SideFromString(s[33:])
	if err != nil {
		return Position{}, Black, fmt.Errorf("%w: %w", ErrBadPositionText, err)
	}
	p, err := Parse(s[:32])
	if err != nil {
		return Position{}, Black, err
	}
	return p, side, nil
}
