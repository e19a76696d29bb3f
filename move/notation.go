// Package move converts between square masks and algebraic notation
// ("a1" is bit 0, "h8" is bit 63) and handles move transcripts.
package move

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var ErrInvalidNotation = errors.New("invalid move notation")

// Pass is the transcript token for a turn with no disk placed. In move
// lists a pass is stored as the zero mask.
const Pass = "pass"

// SquareToAlgebraic returns the two-character name of the square in m,
// such as "c1". It returns false if m does not have exactly one bit set.
func SquareToAlgebraic(m uint64) (string, bool) {
	if bits.OnesCount64(m) != 1 {
		return "", false
	}
	return IndexToAlgebraic(bits.TrailingZeros64(m)), true
}

// IndexToAlgebraic names the square with index idx (0..63).
func IndexToAlgebraic(idx int) string {
	return string([]byte{byte('a' + idx%8), byte('1' + idx/8)})
}

// AlgebraicToIndex parses a square name into its index. The file letter
// is case-insensitive.
func AlgebraicToIndex(s string) (int, error) {
	if len(s) != 2 {
		return -1, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	file := s[0] | 0x20 // lower-case ASCII letters
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return -1, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	return int(rank-'1')*8 + int(file-'a'), nil
}

// AlgebraicToSquare parses a square name into its single-bit mask.
func AlgebraicToSquare(s string) (uint64, error) {
	idx, err := AlgebraicToIndex(s)
	if err != nil {
		return 0, err
	}
	return uint64(1) << uint(idx), nil
}

// MustSquare is AlgebraicToSquare for literals known to be valid.
func MustSquare(s string) uint64 {
	m, err := AlgebraicToSquare(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ToString names a move for display, rendering the zero mask as a pass.
// Masks that are not a single square render as "??".
func ToString(m uint64) string {
	if m == 0 {
		return Pass
	}
	s, ok := SquareToAlgebraic(m)
	if !ok {
		return "??"
	}
	return s
}

// ParseTranscript reads a move list such as "f5d6c3d3c4" or
// "F5 d6, c3 pass d3". Moves may run together or be separated by spaces,
// commas, semicolons or dots; "pass" and "--" record a pass (a zero mask).
func ParseTranscript(s string) ([]uint64, error) {
	moves := []uint64{}
	for i := 0; i < len(s); {
		switch {
		case len(s)-i >= len(Pass) && strings.EqualFold(s[i:i+len(Pass)], Pass):
			moves = append(moves, 0)
			i += len(Pass)
		case strings.HasPrefix(s[i:], "--"):
			moves = append(moves, 0)
			i += 2
		case isSeparator(s[i]):
			i++
		case i+2 <= len(s):
			m, err := AlgebraicToSquare(s[i : i+2])
			if err != nil {
				return nil, fmt.Errorf("move %d: %w", len(moves)+1, err)
			}
			moves = append(moves, m)
			i += 2
		default:
			return nil, fmt.Errorf("move %d: %w: trailing %q", len(moves)+1,
				ErrInvalidNotation, s[i:])
		}
	}
	return moves, nil
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ',', '.', ';':
		return true
	}
	return false
}

// FormatTranscript writes moves in the compact run-together form. Passes
// are written as "--".
func FormatTranscript(moves []uint64) string {
	var sb strings.Builder
	for _, m := range moves {
		if m == 0 {
			sb.WriteString("--")
			continue
		}
		sb.WriteString(ToString(m))
	}
	return sb.String()
}
