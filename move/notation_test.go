package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestSquareToAlgebraic(t *testing.T) {
	is := is.New(t)
	s, ok := SquareToAlgebraic(1)
	is.True(ok)
	is.Equal(s, "a1")
	s, ok = SquareToAlgebraic(4)
	is.True(ok)
	is.Equal(s, "c1")
	_, ok = SquareToAlgebraic(3)
	is.True(!ok)
	_, ok = SquareToAlgebraic(0)
	is.True(!ok)
	s, _ = SquareToAlgebraic(1 << 63)
	is.Equal(s, "h8")
	s, _ = SquareToAlgebraic(1 << 56)
	is.Equal(s, "a8")
	s, _ = SquareToAlgebraic(1 << 7)
	is.Equal(s, "h1")
}

func TestAlgebraicToSquare(t *testing.T) {
	is := is.New(t)
	m, err := AlgebraicToSquare("a1")
	is.NoErr(err)
	is.Equal(m, uint64(1))

	m, err = AlgebraicToSquare("C4")
	is.NoErr(err)
	is.Equal(m, uint64(1<<26))

	for _, bad := range []string{"foo", "", "a", "i1", "a0", "a9", "1a", "@1", "`1", "a:"} {
		_, err = AlgebraicToSquare(bad)
		is.True(errors.Is(err, ErrInvalidNotation))
	}
}

func TestNotationRoundTrip(t *testing.T) {
	is := is.New(t)
	for idx := 0; idx < 64; idx++ {
		m := uint64(1) << idx
		s, ok := SquareToAlgebraic(m)
		is.True(ok)
		back, err := AlgebraicToSquare(s)
		is.NoErr(err)
		is.Equal(back, m)

		i, err := AlgebraicToIndex(IndexToAlgebraic(idx))
		is.NoErr(err)
		is.Equal(i, idx)
	}
}

type transcriptTestCase struct {
	input    string
	expected []uint64
	err      error
}

func TestParseTranscript(t *testing.T) {
	f5, d6, c3 := MustSquare("f5"), MustSquare("d6"), MustSquare("c3")
	cases := []transcriptTestCase{
		{"f5d6c3", []uint64{f5, d6, c3}, nil},
		{"F5 d6, c3", []uint64{f5, d6, c3}, nil},
		{"f5 pass d6 -- c3", []uint64{f5, 0, d6, 0, c3}, nil},
		{"F5 PASS D6 Pass c3", []uint64{f5, 0, d6, 0, c3}, nil},
		{"1. f5 2. d6", nil, ErrInvalidNotation},
		{"", []uint64{}, nil},
		{"f5d", nil, ErrInvalidNotation},
		{"f5z9", nil, ErrInvalidNotation},
	}
	for _, tc := range cases {
		moves, err := ParseTranscript(tc.input)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, tc.input)
			continue
		}
		assert.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, moves, tc.input)
	}
}

func TestParseTranscriptKeepsCaseInErrors(t *testing.T) {
	_, err := ParseTranscript("F5X1")
	assert.ErrorIs(t, err, ErrInvalidNotation)
	assert.Contains(t, err.Error(), `"X1"`)
	assert.Contains(t, err.Error(), "move 2")

	_, err = ParseTranscript("F5D")
	assert.ErrorIs(t, err, ErrInvalidNotation)
	assert.Contains(t, err.Error(), `trailing "D"`)
}

func TestFormatTranscript(t *testing.T) {
	is := is.New(t)
	moves, err := ParseTranscript("f5 d6 pass c3")
	is.NoErr(err)
	is.Equal(FormatTranscript(moves), "f5d6--c3")
	again, err := ParseTranscript(FormatTranscript(moves))
	is.NoErr(err)
	is.Equal(again, moves)
	is.Equal(ToString(0), "pass")
	is.Equal(ToString(3), "??")
}
