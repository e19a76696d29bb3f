// Package autoplay plays batches of uniformly random games and summarizes
// how they end. Seeded batches are reproducible regardless of how many
// workers run them.
package autoplay

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"lukechampine.com/frand"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/position"
	"github.com/domino14/othello/stats"
)

var ErrNoGames = errors.New("number of games must be positive")

const (
	rngBufSize = 1024
	rngRounds  = 12
	// progressInterval is how often, in finished games, a batch logs its
	// progress.
	progressInterval = 10000
)

type Options struct {
	Games   int
	Threads int
	// Seed makes the batch reproducible. Zero means a fresh random seed.
	Seed uint64
	// KeepGames stores every game in the Summary.
	KeepGames bool
}

// Game is one finished random game. Passes appear in Moves as zero masks.
type Game struct {
	Moves  []uint64
	Final  position.Position
	Status position.Status
}

// Differential is black's disk count minus white's.
func (g Game) Differential() int {
	return g.Final.Count(position.Black) - g.Final.Count(position.White)
}

func (g Game) Transcript() string {
	return move.FormatTranscript(g.Moves)
}

// gameRNG returns the generator for game i of a seeded batch.
func gameRNG(seed uint64, i int) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], uint64(i))
	return frand.NewCustom(key[:], rngBufSize, rngRounds)
}

// pick returns a uniformly chosen square of the non-empty mask moves.
func pick(moves uint64, rng *frand.RNG) uint64 {
	k := rng.Intn(bitboard.Count(moves))
	for rep := 0; rep < k; rep++ {
		_, moves = bitboard.PopLSB(moves)
	}
	m, _ := bitboard.PopLSB(moves)
	return m
}

// Play plays random legal moves from p until neither side can move.
func Play(p position.Position, side position.Side, rng *frand.RNG) Game {
	var g Game
	for {
		st := position.Classify(p, side)
		if st.Terminal() {
			g.Final, g.Status = p, st
			return g
		}
		var m uint64
		if st.Kind == position.Ongoing {
			m = pick(st.Moves, rng)
			p = p.ApplyUnchecked(m, side)
		}
		g.Moves = append(g.Moves, m)
		side = side.Opponent()
	}
}

type Summary struct {
	// Seed replays the batch when passed back in Options.
	Seed      uint64
	Games     int
	BlackWins int
	WhiteWins int
	Ties      int
	// Length counts plies, passes included.
	Length stats.Statistic
	// Score is 1 for a black win, 0.5 for a tie and 0 for a white win.
	Score         stats.Statistic
	Differentials []float64
	DiffMean      float64
	DiffStdev     float64
	Played        []Game
}

func (s *Summary) add(g Game) {
	s.Games++
	switch g.Status.Kind {
	case position.BlackWon:
		s.BlackWins++
		s.Score.Push(1)
	case position.WhiteWon:
		s.WhiteWins++
		s.Score.Push(0)
	default:
		s.Ties++
		s.Score.Push(0.5)
	}
	s.Length.Push(float64(len(g.Moves)))
	s.Differentials = append(s.Differentials, float64(g.Differential()))
}

// Run plays opts.Games random games from p across opts.Threads workers.
func Run(ctx context.Context, p position.Position, side position.Side, opts Options) (*Summary, error) {
	if opts.Games <= 0 {
		return nil, ErrNoGames
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	log.Debug().Uint64("seed", seed).Int("games", opts.Games).Msg("autoplay-start")

	games := make([]Game, opts.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Threads, 1))
	for i := range games {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			games[i] = Play(p, side, gameRNG(seed, i))
			if (i+1)%progressInterval == 0 {
				log.Info().Int("game", i+1).Msg("autoplay-progress")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &Summary{Seed: seed}
	for _, gm := range games {
		s.add(gm)
	}
	s.DiffMean, s.DiffStdev = stat.MeanStdDev(s.Differentials, nil)
	if s.Games == 1 {
		s.DiffStdev = 0
	}
	if opts.KeepGames {
		s.Played = games
	}
	log.Debug().Int("black", s.BlackWins).Int("white", s.WhiteWins).Int("ties", s.Ties).
		Msg("autoplay-done")
	return s, nil
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "games: %d (seed %d)\n", s.Games, s.Seed)
	fmt.Fprintf(&sb, "black wins: %d (%.2f%%)\n", s.BlackWins, pct(s.BlackWins, s.Games))
	fmt.Fprintf(&sb, "white wins: %d (%.2f%%)\n", s.WhiteWins, pct(s.WhiteWins, s.Games))
	fmt.Fprintf(&sb, "ties: %d (%.2f%%)\n", s.Ties, pct(s.Ties, s.Games))
	lo, hi := s.Score.Interval(95)
	fmt.Fprintf(&sb, "black score: %.3f (95%% CI %.3f to %.3f)\n", s.Score.Mean(), lo, hi)
	fmt.Fprintf(&sb, "plies: mean %.2f stdev %.2f min %.0f max %.0f\n",
		s.Length.Mean(), s.Length.Stdev(), s.Length.Min(), s.Length.Max())
	fmt.Fprintf(&sb, "disk differential (black - white): mean %.2f stdev %.2f\n",
		s.DiffMean, s.DiffStdev)
	return sb.String()
}

// Histogram draws the disk differentials in the given number of bins.
func (s *Summary) Histogram(w io.Writer, bins int) error {
	if len(s.Differentials) == 0 {
		return nil
	}
	h := histogram.Hist(bins, s.Differentials)
	return histogram.Fprint(w, h, histogram.Linear(40))
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
