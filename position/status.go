package position

import (
	"fmt"
	"math"
	"strings"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
)

// Sentinel codes returned by GameStatus in place of a move mask. They sit
// at the top of the uint64 range and must keep these exact values.
const (
	MustPass  uint64 = math.MaxUint64
	BlackWins uint64 = math.MaxUint64 - 1
	WhiteWins uint64 = math.MaxUint64 - 2
	Tie       uint64 = math.MaxUint64 - 3
)

// GameStatus returns the legal move mask of the side to move if it is
// non-empty. Otherwise it returns MustPass when the opponent can still
// move, or the terminal code decided by disk count.
func GameStatus(white, black uint64, whiteToMove bool) uint64 {
	me, opp := white, black
	if !whiteToMove {
		me, opp = black, white
	}
	if moves := bitboard.ComputeMoves(me, opp); moves != 0 {
		return moves
	}
	if bitboard.ComputeMoves(opp, me) != 0 {
		return MustPass
	}
	wc, bc := bitboard.Count(white), bitboard.Count(black)
	switch {
	case wc > bc:
		return WhiteWins
	case bc > wc:
		return BlackWins
	}
	return Tie
}

// Kind is the tag of a Status.
type Kind uint8

const (
	Ongoing Kind = iota
	Pass
	WhiteWon
	BlackWon
	Drawn
)

func (k Kind) String() string {
	switch k {
	case Ongoing:
		return "ongoing"
	case Pass:
		return "must pass"
	case WhiteWon:
		return "white wins"
	case BlackWon:
		return "black wins"
	case Drawn:
		return "tie"
	}
	return "unknown"
}

// Status is the structured form of a GameStatus code. Moves is only set
// when Kind is Ongoing.
type Status struct {
	Kind  Kind
	Moves uint64
}

// Terminal reports whether neither side can move.
func (s Status) Terminal() bool {
	return s.Kind == WhiteWon || s.Kind == BlackWon || s.Kind == Drawn
}

// Code returns the GameStatus encoding of s.
func (s Status) Code() uint64 {
	switch s.Kind {
	case Pass:
		return MustPass
	case WhiteWon:
		return WhiteWins
	case BlackWon:
		return BlackWins
	case Drawn:
		return Tie
	}
	return s.Moves
}

func (s Status) String() string {
	if s.Kind != Ongoing {
		return s.Kind.String()
	}
	sqs := bitboard.Squares(s.Moves)
	names := make([]string, len(sqs))
	for i, sq := range sqs {
		names[i] = move.IndexToAlgebraic(sq)
	}
	return fmt.Sprintf("%d moves: %s", len(sqs), strings.Join(names, " "))
}

// StatusFromCode decodes a GameStatus return value.
func StatusFromCode(code uint64) Status {
	switch code {
	case MustPass:
		return Status{Kind: Pass}
	case WhiteWins:
		return Status{Kind: WhiteWon}
	case BlackWins:
		return Status{Kind: BlackWon}
	case Tie:
		return Status{Kind: Drawn}
	}
	return Status{Kind: Ongoing, Moves: code}
}

// Classify is GameStatus returning a Status.
func Classify(p Position, s Side) Status {
	return StatusFromCode(GameStatus(p.White, p.Black, s.IsWhite()))
}

// Winner returns the side that won a terminal status. The second return
// value is false for ties and for games still in progress.
func (s Status) Winner() (Side, bool) {
	switch s.Kind {
	case WhiteWon:
		return White, true
	case BlackWon:
		return Black, true
	}
	return Black, false
}
