// Package gamerecord folds a sequence of moves into the positions it
// produces. It keeps the full history so any ply can be looked at again.
package gamerecord

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/position"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrIllegalPass = errors.New("pass is only allowed with no legal move")
	ErrPlyRange    = errors.New("ply out of range")
)

// Ply is one turn of the game. Move is 0 for a pass.
type Ply struct {
	Side  position.Side
	Move  uint64
	Flips uint64
	After position.Position
	// Forced is set on passes inserted by Play rather than given by the
	// caller.
	Forced bool
}

// Record is a game from a starting position.
type Record struct {
	start position.Position
	first position.Side
	plies []Ply
}

// New starts an empty record. Use position.Start() and position.Black
// for a standard game.
func New(start position.Position, first position.Side) *Record {
	return &Record{start: start, first: first}
}

// Replay plays every move of moves from start. Passes may be given
// explicitly as zero masks or left out; a missing pass is inserted when
// the side to move has no legal move.
func Replay(start position.Position, first position.Side, moves []uint64) (*Record, error) {
	r := New(start, first)
	for _, m := range moves {
		if err := r.Play(m); err != nil {
			return r, err
		}
	}
	return r, nil
}

// ReplayTranscript parses a transcript and replays it.
func ReplayTranscript(start position.Position, first position.Side, transcript string) (*Record, error) {
	moves, err := move.ParseTranscript(transcript)
	if err != nil {
		return nil, err
	}
	return Replay(start, first, moves)
}

// Position returns the current position.
func (r *Record) Position() position.Position {
	if len(r.plies) == 0 {
		return r.start
	}
	return r.plies[len(r.plies)-1].After
}

// OnTurn returns the side to move in the current position.
func (r *Record) OnTurn() position.Side {
	if len(r.plies) == 0 {
		return r.first
	}
	return r.plies[len(r.plies)-1].Side.Opponent()
}

// Status classifies the current position.
func (r *Record) Status() position.Status {
	return position.Classify(r.Position(), r.OnTurn())
}

// NumPlies returns the number of turns played, passes included.
func (r *Record) NumPlies() int {
	return len(r.plies)
}

// Plies returns a copy of the turn history.
func (r *Record) Plies() []Ply {
	return append([]Ply(nil), r.plies...)
}

// PositionAt returns the position before ply n (0-based) and the side to
// move in it. n may equal NumPlies for the current position.
func (r *Record) PositionAt(n int) (position.Position, position.Side, error) {
	if n < 0 || n > len(r.plies) {
		return position.Position{}, r.first, fmt.Errorf("%w: %d (have %d)", ErrPlyRange, n, len(r.plies))
	}
	if n == 0 {
		return r.start, r.first, nil
	}
	prev := r.plies[n-1]
	return prev.After, prev.Side.Opponent(), nil
}

// Moves returns the moves played, passes included as zero masks.
func (r *Record) Moves() []uint64 {
	moves := make([]uint64, len(r.plies))
	for i, p := range r.plies {
		moves[i] = p.Move
	}
	return moves
}

// Transcript renders the moves in compact form.
func (r *Record) Transcript() string {
	return move.FormatTranscript(r.Moves())
}

// Play applies m (0 for a pass) for the side on turn. If the side on turn
// has no legal move and m is not a pass, a forced pass is recorded first
// and m is played for the opponent. A failed Play leaves the record as it
// was.
func (r *Record) Play(m uint64) error {
	st := r.Status()
	if st.Terminal() {
		return fmt.Errorf("ply %d: %w (%s)", len(r.plies)+1, ErrGameOver, st)
	}
	side := r.OnTurn()
	pos := r.Position()
	if m == 0 {
		if st.Kind != position.Pass {
			return fmt.Errorf("ply %d: %w", len(r.plies)+1, ErrIllegalPass)
		}
		r.plies = append(r.plies, Ply{Side: side, After: pos})
		return nil
	}
	var forced []Ply
	if st.Kind == position.Pass {
		forced = append(forced, Ply{Side: side, After: pos, Forced: true})
		side = side.Opponent()
	}
	next, err := pos.Apply(m, side)
	if err != nil {
		return fmt.Errorf("ply %d (%s %s): %w", len(r.plies)+len(forced)+1, side, move.ToString(m), err)
	}
	if len(forced) > 0 {
		log.Debug().Int("ply", len(r.plies)+1).Str("side", forced[0].Side.String()).Msg("inserting-forced-pass")
	}
	me, opp := pos.MeOpp(side)
	r.plies = append(r.plies, forced...)
	r.plies = append(r.plies, Ply{
		Side:  side,
		Move:  m,
		Flips: bitboard.Flips(m, me, opp),
		After: next,
	})
	return nil
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	return &Record{start: r.start, first: r.first, plies: r.Plies()}
}
