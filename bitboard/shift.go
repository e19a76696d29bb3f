// Package bitboard implements the Othello rules on a pair of 64-bit disk
// masks. Bit 0 is a1, bit 7 is h1, bit 56 is a8 and bit 63 is h8, so the
// index of a square is rank*8 + file.
//
// Every function in this package is a pure function of its arguments.
package bitboard

import "math/bits"

const (
	Empty uint64 = 0
	Full  uint64 = ^Empty

	FileA uint64 = 0x0101010101010101
	FileH uint64 = FileA << 7
	Rank1 uint64 = 0xff
	Rank8 uint64 = Rank1 << 56

	// NotAFile and NotHFile are applied before a horizontal shift so a
	// disk on the edge file cannot wrap onto the opposite edge of the
	// neighbouring rank.
	NotAFile uint64 = 0xfefefefefefefefe
	NotHFile uint64 = 0x7f7f7f7f7f7f7f7f

	NumSquares = 64
	NumFiles   = 8
	NumRanks   = 8
)

// Direction indexes the eight compass directions.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections
)

var directionNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) String() string {
	if d >= NumDirections {
		return "none"
	}
	return directionNames[d]
}

// Shift moves every square of b one step in direction d.
func (d Direction) Shift(b uint64) uint64 {
	return shifts[d](b)
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) % NumDirections
}

var shifts = [NumDirections]func(uint64) uint64{
	ShiftN, ShiftNE, ShiftE, ShiftSE, ShiftS, ShiftSW, ShiftW, ShiftNW,
}

// North and south need no mask: rows pushed past rank 8 or rank 1 leave
// the 64-bit word.

func ShiftN(b uint64) uint64 { return b << 8 }
func ShiftS(b uint64) uint64 { return b >> 8 }

func ShiftE(b uint64) uint64  { return (b & NotHFile) << 1 }
func ShiftW(b uint64) uint64  { return (b & NotAFile) >> 1 }
func ShiftNE(b uint64) uint64 { return (b & NotHFile) << 9 }
func ShiftNW(b uint64) uint64 { return (b & NotAFile) << 7 }
func ShiftSE(b uint64) uint64 { return (b & NotHFile) >> 7 }
func ShiftSW(b uint64) uint64 { return (b & NotAFile) >> 9 }

// Count returns the number of disks in b.
func Count(b uint64) int {
	return bits.OnesCount64(b)
}

// Square returns the mask with only square idx set. idx must be in 0..63.
func Square(idx int) uint64 {
	return uint64(1) << uint(idx)
}

// Index returns the square index of a single-bit mask. The second return
// value is false if b does not have exactly one bit set.
func Index(b uint64) (int, bool) {
	if bits.OnesCount64(b) != 1 {
		return -1, false
	}
	return bits.TrailingZeros64(b), true
}

// Squares returns the indices of the set bits of b, lowest first.
func Squares(b uint64) []int {
	sqs := make([]int, 0, bits.OnesCount64(b))
	for b != 0 {
		sqs = append(sqs, bits.TrailingZeros64(b))
		b &= b - 1
	}
	return sqs
}

// PopLSB splits off the lowest set bit of b. It returns the single-bit
// mask and the remainder.
func PopLSB(b uint64) (uint64, uint64) {
	lsb := b & -b
	return lsb, b ^ lsb
}
