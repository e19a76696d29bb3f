package autoplay

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/gamerecord"
	"github.com/domino14/othello/position"
	"github.com/domino14/othello/testhelpers"
)

func TestSeededRunsRepeat(t *testing.T) {
	is := is.New(t)
	opts := Options{Games: 200, Threads: 4, Seed: 42, KeepGames: true}
	a, err := Run(context.Background(), position.Start(), position.Black, opts)
	is.NoErr(err)
	opts.Threads = 1
	b, err := Run(context.Background(), position.Start(), position.Black, opts)
	is.NoErr(err)

	is.Equal(a.BlackWins, b.BlackWins)
	is.Equal(a.WhiteWins, b.WhiteWins)
	is.Equal(a.Ties, b.Ties)
	is.Equal(a.Differentials, b.Differentials)
	for i := range a.Played {
		is.Equal(a.Played[i].Transcript(), b.Played[i].Transcript())
	}

	is.Equal(a.Seed, uint64(42))

	opts.Seed = 43
	c, err := Run(context.Background(), position.Start(), position.Black, opts)
	is.NoErr(err)
	is.True(!assert.ObjectsAreEqual(a.Differentials, c.Differentials))
}

func TestGamesReplay(t *testing.T) {
	is := is.New(t)
	s, err := Run(context.Background(), position.Start(), position.Black,
		Options{Games: 100, Threads: 2, Seed: 7, KeepGames: true})
	is.NoErr(err)
	is.Equal(s.Games, 100)
	is.Equal(s.BlackWins+s.WhiteWins+s.Ties, 100)
	is.Equal(s.Length.Iterations(), 100)
	is.Equal(len(s.Played), 100)

	for _, g := range s.Played {
		is.True(g.Status.Terminal())
		is.NoErr(g.Final.Validate())
		r, err := gamerecord.Replay(position.Start(), position.Black, g.Moves)
		is.NoErr(err)
		is.Equal(r.Position(), g.Final)
		is.Equal(r.Status(), g.Status)
		is.Equal(r.Transcript(), g.Transcript())
		// Disks never leave the board, so the count only grows.
		is.Equal(bitboard.Count(g.Final.Occupied()), 4+len(g.Moves)-countPasses(g.Moves))
	}
}

func countPasses(moves []uint64) int {
	n := 0
	for _, m := range moves {
		if m == 0 {
			n++
		}
	}
	return n
}

func TestSummaryText(t *testing.T) {
	s, err := Run(context.Background(), position.Start(), position.Black,
		Options{Games: 50, Seed: 1})
	assert.NoError(t, err)
	assert.Nil(t, s.Played)
	assert.Contains(t, s.String(), "games: 50 (seed 1)\n")
	assert.Contains(t, s.String(), "black score:")
	assert.GreaterOrEqual(t, s.Length.Min(), 9.0)
	// At most one pass per move.
	assert.LessOrEqual(t, s.Length.Max(), 120.0)

	var buf bytes.Buffer
	assert.NoError(t, s.Histogram(&buf, 10))
	assert.Contains(t, buf.String(), "%")
}

func TestFinishedStart(t *testing.T) {
	is := is.New(t)
	r, err := gamerecord.ReplayTranscript(position.Start(), position.Black, testhelpers.Wipeout)
	is.NoErr(err)
	s, err := Run(context.Background(), r.Position(), r.OnTurn(), Options{Games: 3, Seed: 9, KeepGames: true})
	is.NoErr(err)
	is.Equal(s.BlackWins, 3)
	is.Equal(s.DiffMean, 13.0)
	is.Equal(s.DiffStdev, 0.0)
	for _, g := range s.Played {
		is.Equal(len(g.Moves), 0)
	}
}

func TestSingleGame(t *testing.T) {
	is := is.New(t)
	s, err := Run(context.Background(), position.Start(), position.Black, Options{Games: 1, Seed: 5})
	is.NoErr(err)
	is.Equal(s.DiffStdev, 0.0)
	is.Equal(s.DiffMean, s.Differentials[0])
}

func TestBadInput(t *testing.T) {
	is := is.New(t)
	_, err := Run(context.Background(), position.Start(), position.Black, Options{})
	is.True(errors.Is(err, ErrNoGames))
	_, err = Run(context.Background(), position.Position{White: 1, Black: 1}, position.Black,
		Options{Games: 1})
	is.True(errors.Is(err, position.ErrOverlappingDisks))
}

func TestCancel(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, position.Start(), position.Black, Options{Games: 1000, Threads: 2})
	is.True(errors.Is(err, context.Canceled))
}

func BenchmarkPlay(b *testing.B) {
	rng := gameRNG(1, 0)
	for i := 0; i < b.N; i++ {
		Play(position.Start(), position.Black, rng)
	}
}
