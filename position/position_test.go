package position

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
)

func TestStatusCurrentPlayerHasMoves(t *testing.T) {
	is := is.New(t)
	p := Start()
	is.Equal(GameStatus(p.White, p.Black, true), uint64(1<<20|1<<29|1<<34|1<<43))
	is.Equal(GameStatus(p.White, p.Black, false), uint64(1<<19|1<<26|1<<37|1<<44))
}

func TestStatusMustPass(t *testing.T) {
	is := is.New(t)
	white := uint64(0x0000_FFFF_FFFF_F000)
	black := uint64(0x0000_0000_0000_FFFF)
	is.Equal(GameStatus(white, black, true), MustPass)
	is.Equal(MustPass, uint64(18446744073709551615))
}

func TestStatusWhiteWins(t *testing.T) {
	is := is.New(t)
	white := uint64(14260085270048145407)
	black := uint64(67108864)
	is.Equal(GameStatus(white, black, true), WhiteWins)
	is.Equal(GameStatus(white, black, false), WhiteWins)
	is.Equal(WhiteWins, uint64(18446744073709551613))
}

func TestStatusBlackWins(t *testing.T) {
	is := is.New(t)
	white := uint64(67108864)
	black := uint64(14260085270048145407)
	is.Equal(GameStatus(white, black, false), BlackWins)
	is.Equal(BlackWins, uint64(18446744073709551614))
}

func TestStatusTie(t *testing.T) {
	is := is.New(t)
	white := uint64(0x0000_0000_FFFF_FFFF)
	black := uint64(0xFFFF_FFFF_0000_0000)
	is.Equal(GameStatus(white, black, true), Tie)
	is.Equal(GameStatus(white, black, false), Tie)
	is.Equal(Tie, uint64(18446744073709551612))
}

func TestStatusIdempotent(t *testing.T) {
	is := is.New(t)
	white := uint64(0x0000_FFFF_FFFF_F000)
	black := uint64(0x0000_0000_0000_FFFF)
	first := GameStatus(white, black, true)
	is.Equal(GameStatus(white, black, true), first)
	is.Equal(white, uint64(0x0000_FFFF_FFFF_F000))
	is.Equal(black, uint64(0x0000_0000_0000_FFFF))
}

func TestStatusEmptyBoardIsTie(t *testing.T) {
	is := is.New(t)
	is.Equal(GameStatus(0, 0, true), Tie)
}

func TestClassify(t *testing.T) {
	is := is.New(t)
	st := Classify(Start(), Black)
	is.Equal(st.Kind, Ongoing)
	is.Equal(st.Moves, uint64(1<<19|1<<26|1<<37|1<<44))
	is.Equal(st.String(), "4 moves: d3 c4 f5 e6")
	is.True(!st.Terminal())

	st = Classify(Position{White: 0x0000_FFFF_FFFF_F000, Black: 0xFFFF}, White)
	is.Equal(st.Kind, Pass)
	is.Equal(st.String(), "must pass")

	st = Classify(Position{White: 14260085270048145407, Black: 67108864}, Black)
	is.Equal(st.Kind, WhiteWon)
	is.True(st.Terminal())
	winner, ok := st.Winner()
	is.True(ok)
	is.Equal(winner, White)

	st = Classify(Position{White: 0xFFFF_FFFF, Black: 0xFFFF_FFFF_0000_0000}, White)
	is.Equal(st.Kind, Drawn)
	_, ok = st.Winner()
	is.True(!ok)
}

func TestStatusCodeRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, code := range []uint64{MustPass, WhiteWins, BlackWins, Tie, 1 << 19, 0x8100000000000081} {
		is.Equal(StatusFromCode(code).Code(), code)
	}
	is.Equal(StatusFromCode(BlackWins).Kind, BlackWon)
}

func TestApply(t *testing.T) {
	is := is.New(t)
	p := Start()
	q, err := p.Apply(move.MustSquare("f5"), Black)
	is.NoErr(err)
	is.Equal(q.Count(Black), 4)
	is.Equal(q.Count(White), 1)
	is.Equal(p, Start())
	is.Equal(p.ApplyUnchecked(move.MustSquare("f5"), Black), q)

	_, err = p.Apply(move.MustSquare("d4"), Black)
	is.True(errors.Is(err, bitboard.ErrOccupiedSquare))
	_, err = p.Apply(move.MustSquare("a1"), Black)
	is.True(errors.Is(err, bitboard.ErrNoFlips))
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	is.NoErr(Start().Validate())
	err := Position{White: 1 | 1<<63, Black: 1<<63 | 2}.Validate()
	is.True(errors.Is(err, ErrOverlappingDisks))
	is.Equal(err.Error(), "white and black share a square: h8")
}

func TestStringParse(t *testing.T) {
	is := is.New(t)
	p := Start()
	is.Equal(p.String(), "00000010080000000000000810000000")
	back, err := Parse(p.String())
	is.NoErr(err)
	is.Equal(back, p)

	is.Equal(p.StringWithSide(White), "00000010080000000000000810000000-w")
	q, side, err := ParseWithSide("00000010080000000000000810000000-b")
	is.NoErr(err)
	is.Equal(q, p)
	is.Equal(side, Black)

	_, err = Parse("0000")
	is.True(errors.Is(err, ErrBadPositionText))
	_, err = Parse("0000001008000000000000081000000g")
	is.True(errors.Is(err, ErrBadPositionText))
	_, err = Parse("00000000000000010000000000000001")
	is.True(errors.Is(err, ErrOverlappingDisks))
	_, _, err = ParseWithSide("00000010080000000000000810000000-x")
	is.True(errors.Is(err, ErrBadPositionText))
}

func TestSides(t *testing.T) {
	is := is.New(t)
	is.Equal(White.Opponent(), Black)
	is.Equal(Black.Opponent(), White)
	s, err := SideFromString("W")
	is.NoErr(err)
	is.Equal(s, White)
	_, err = SideFromString("red")
	is.True(err != nil)
}

func TestNormalizeOpenings(t *testing.T) {
	is := is.New(t)
	// The four first moves are symmetric images of one another.
	var normals []Position
	for _, sq := range []string{"f5", "e6", "c4", "d3"} {
		p, err := Start().Apply(move.MustSquare(sq), Black)
		is.NoErr(err)
		n, sym := p.Normalize()
		is.Equal(p.Transform(sym), n)
		normals = append(normals, n)
	}
	for _, n := range normals[1:] {
		is.Equal(n, normals[0])
		is.Equal(n.Hash(), normals[0].Hash())
	}
}

func TestHash(t *testing.T) {
	is := is.New(t)
	p := Start()
	is.Equal(p.Hash(), Start().Hash())
	swapped := Position{White: p.Black, Black: p.White}
	is.True(p.Hash() != swapped.Hash())
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	expected := "   a b c d e f g h\n" +
		"  +-+-+-+-+-+-+-+-+\n" +
		"8 | | | | | | | | | 8\n" +
		"7 | | | | | | | | | 7\n" +
		"6 | | | | |.| | | | 6\n" +
		"5 | | | |X|O|.| | | 5\n" +
		"4 | | |.|O|X| | | | 4\n" +
		"3 | | | |.| | | | | 3\n" +
		"2 | | | | | | | | | 2\n" +
		"1 | | | | | | | | | 1\n" +
		"  +-+-+-+-+-+-+-+-+\n" +
		"black (X) 2  white (O) 2  -- black to move\n"
	is.Equal(Start().ToDisplayText(Black), expected)
}

func TestHashWithSide(t *testing.T) {
	is := is.New(t)
	p := Start()
	is.True(p.HashWithSide(Black) != p.HashWithSide(White))
	is.Equal(p.HashWithSide(White), Start().HashWithSide(White))
}
