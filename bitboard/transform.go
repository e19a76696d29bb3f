package bitboard

import "math/bits"

// FlipVertical mirrors b across the horizontal centre line (rank 1 <-> rank 8).
func FlipVertical(b uint64) uint64 {
	return bits.ReverseBytes64(b)
}

// FlipHorizontal mirrors b across the vertical centre line (file a <-> file h).
func FlipHorizontal(b uint64) uint64 {
	const (
		k1 = 0x5555555555555555
		k2 = 0x3333333333333333
		k4 = 0x0f0f0f0f0f0f0f0f
	)
	b = ((b >> 1) & k1) | ((b & k1) << 1)
	b = ((b >> 2) & k2) | ((b & k2) << 2)
	b = ((b >> 4) & k4) | ((b & k4) << 4)
	return b
}

// FlipDiagA1H8 transposes b along the a1-h8 diagonal.
func FlipDiagA1H8(b uint64) uint64 {
	const (
		k1 = 0x5500550055005500
		k2 = 0x3333000033330000
		k4 = 0x0f0f0f0f00000000
	)
	t := k4 & (b ^ (b << 28))
	b ^= t ^ (t >> 28)
	t = k2 & (b ^ (b << 14))
	b ^= t ^ (t >> 14)
	t = k1 & (b ^ (b << 7))
	b ^= t ^ (t >> 7)
	return b
}

// FlipDiagA8H1 transposes b along the a8-h1 anti-diagonal.
func FlipDiagA8H1(b uint64) uint64 {
	const (
		k1 = 0xaa00aa00aa00aa00
		k2 = 0xcccc0000cccc0000
		k4 = 0xf0f0f0f00f0f0f0f
	)
	t := b ^ (b << 36)
	b ^= k4 & (t ^ (b >> 36))
	t = k2 & (b ^ (b << 18))
	b ^= t ^ (t >> 18)
	t = k1 & (b ^ (b << 9))
	b ^= t ^ (t >> 9)
	return b
}

// Rotate180 turns the board half way round (a1 <-> h8).
func Rotate180(b uint64) uint64 {
	return bits.Reverse64(b)
}

// Symmetry is one of the eight symmetries of the square board.
type Symmetry uint8

const (
	Identity Symmetry = iota
	Rotate90
	Rotate180Sym
	Rotate270
	MirrorVertical
	MirrorHorizontal
	MirrorDiagA1H8
	MirrorDiagA8H1
	NumSymmetries
)

// Apply maps every square of b through the symmetry.
func (s Symmetry) Apply(b uint64) uint64 {
	switch s {
	case Rotate90:
		return FlipVertical(FlipDiagA1H8(b))
	case Rotate180Sym:
		return Rotate180(b)
	case Rotate270:
		return FlipDiagA1H8(FlipVertical(b))
	case MirrorVertical:
		return FlipVertical(b)
	case MirrorHorizontal:
		return FlipHorizontal(b)
	case MirrorDiagA1H8:
		return FlipDiagA1H8(b)
	case MirrorDiagA8H1:
		return FlipDiagA8H1(b)
	}
	return b
}

// Inverse returns the symmetry that undoes s.
func (s Symmetry) Inverse() Symmetry {
	switch s {
	case Rotate90:
		return Rotate270
	case Rotate270:
		return Rotate90
	}
	return s
}

// ApplySquare maps a single square index through the symmetry.
func (s Symmetry) ApplySquare(idx int) int {
	f, r := idx%NumFiles, idx/NumFiles
	switch s {
	case Rotate90:
		f, r = r, 7-f
	case Rotate180Sym:
		f, r = 7-f, 7-r
	case Rotate270:
		f, r = 7-r, f
	case MirrorVertical:
		r = 7 - r
	case MirrorHorizontal:
		f = 7 - f
	case MirrorDiagA1H8:
		f, r = r, f
	case MirrorDiagA8H1:
		f, r = 7-r, 7-f
	}
	return r*NumFiles + f
}
