package bitboard

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othello/testhelpers"
)

func TestSymmetryApplyMatchesSquareMapping(t *testing.T) {
	is := is.New(t)
	for s := Identity; s < NumSymmetries; s++ {
		for sq := 0; sq < NumSquares; sq++ {
			is.Equal(s.Apply(Square(sq)), Square(s.ApplySquare(sq)))
		}
	}
}

func TestSymmetryInverse(t *testing.T) {
	is := is.New(t)
	for rep := 0; rep < 200; rep++ {
		me, opp := testhelpers.RandomMasks()
		b := me | opp
		for s := Identity; s < NumSymmetries; s++ {
			is.Equal(s.Inverse().Apply(s.Apply(b)), b)
		}
	}
}

func TestStartPositionSymmetries(t *testing.T) {
	is := is.New(t)
	// f5 is mapped onto each of black's four opening moves.
	f5 := Square(37)
	is.Equal(FlipDiagA1H8(f5), Square(44)) // e6
	is.Equal(Rotate180(f5), Square(26))    // c4
	is.Equal(FlipDiagA8H1(f5), Square(19)) // d3
	is.Equal(FlipVertical(Square(0)), Square(56))
	is.Equal(FlipHorizontal(Square(0)), Square(7))

	for _, s := range []Symmetry{MirrorDiagA1H8, MirrorDiagA8H1, Rotate180Sym} {
		is.Equal(s.Apply(startWhite), startWhite)
		is.Equal(s.Apply(startBlack), startBlack)
	}
}

func TestMovesCommuteWithSymmetries(t *testing.T) {
	is := is.New(t)
	for rep := 0; rep < 500; rep++ {
		me, opp := testhelpers.RandomMasks()
		moves := ComputeMoves(me, opp)
		for s := Identity; s < NumSymmetries; s++ {
			is.Equal(ComputeMoves(s.Apply(me), s.Apply(opp)), s.Apply(moves))
		}
	}
}

func TestSquaresAndIndex(t *testing.T) {
	is := is.New(t)
	is.Equal(Squares(Square(0)|Square(9)|Square(63)), []int{0, 9, 63})
	is.Equal(len(Squares(0)), 0)

	idx, ok := Index(Square(42))
	is.True(ok)
	is.Equal(idx, 42)
	_, ok = Index(3)
	is.True(!ok)
	_, ok = Index(0)
	is.True(!ok)

	lsb, rest := PopLSB(0b1010)
	is.Equal(lsb, uint64(0b10))
	is.Equal(rest, uint64(0b1000))
}

func TestDirectionShift(t *testing.T) {
	is := is.New(t)
	d4 := Square(27)
	is.Equal(North.Shift(d4), Square(35))
	is.Equal(South.Shift(d4), Square(19))
	is.Equal(East.Shift(d4), Square(28))
	is.Equal(West.Shift(d4), Square(26))
	is.Equal(NorthEast.Shift(d4), Square(36))
	is.Equal(NorthWest.Shift(d4), Square(34))
	is.Equal(SouthEast.Shift(d4), Square(20))
	is.Equal(SouthWest.Shift(d4), Square(18))
	for d := North; d < NumDirections; d++ {
		is.Equal(d.Opposite().Shift(d.Shift(d4)), d4)
	}
	is.Equal(East.Shift(FileH), uint64(0))
	is.Equal(West.Shift(FileA), uint64(0))
	is.Equal(North.Shift(Rank8), uint64(0))
	is.Equal(South.Shift(Rank1), uint64(0))
	is.Equal(North.String(), "N")
	is.Equal(NumDirections.String(), "none")
}
