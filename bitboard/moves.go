package bitboard

import "errors"

var (
	ErrOccupiedSquare = errors.New("square already occupied")
	ErrNoFlips        = errors.New("no flips, move is illegal")
)

// maxRun is the longest run of opponent disks a move can capture in one
// direction: eight squares on a line minus the move and the anchor.
const maxRun = 6

// ComputeMoves returns the mask of empty squares where the side owning me
// can play against opp. It does not care which colour me belongs to.
func ComputeMoves(me, opp uint64) uint64 {
	empty := ^(me | opp)
	var moves uint64
	for _, shift := range shifts {
		run := shift(me) & opp
		for rep := 0; rep < maxRun-1; rep++ {
			run |= shift(run) & opp
		}
		moves |= shift(run) & empty
	}
	return moves
}

// flipsInDirection walks from move through opp disks and returns the run
// if it ends on one of me's disks. The walk is not length bounded.
func flipsInDirection(move, me, opp uint64, shift func(uint64) uint64) uint64 {
	var flipped uint64
	ray := shift(move)
	for ray&opp != 0 {
		flipped |= ray
		ray = shift(ray)
	}
	if ray&me != 0 {
		return flipped
	}
	return 0
}

// Flips returns the opponent disks captured by playing move for me. It
// returns 0 if the move captures nothing. Occupancy of move is not
// checked.
func Flips(move, me, opp uint64) uint64 {
	var flips uint64
	for _, shift := range shifts {
		flips |= flipsInDirection(move, me, opp, shift)
	}
	return flips
}

// boundedFlips is the fast path of Flips: each direction extends the run
// at most maxRun squares, which is always enough on an 8x8 board.
func boundedFlips(move, me, opp uint64) uint64 {
	var flips uint64
	for _, shift := range shifts {
		run := shift(move) & opp
		if run == 0 {
			continue
		}
		for rep := 0; rep < maxRun-1; rep++ {
			run |= shift(run) & opp
		}
		if shift(run)&me != 0 {
			flips |= run
		}
	}
	return flips
}

func meOpp(white, black uint64, whiteToMove bool) (uint64, uint64) {
	if whiteToMove {
		return white, black
	}
	return black, white
}

func whiteBlack(me, opp uint64, whiteToMove bool) (uint64, uint64) {
	if whiteToMove {
		return me, opp
	}
	return opp, me
}

// ApplyMove plays move for the side to move and returns the new white and
// black masks. It fails with ErrOccupiedSquare if the target square holds
// a disk of either colour, and with ErrNoFlips if the move captures
// nothing. The input masks are left untouched.
func ApplyMove(white, black, move uint64, whiteToMove bool) (uint64, uint64, error) {
	if move&(white|black) != 0 {
		return white, black, ErrOccupiedSquare
	}
	me, opp := meOpp(white, black, whiteToMove)
	flips := Flips(move, me, opp)
	if flips == 0 {
		return white, black, ErrNoFlips
	}
	w, b := whiteBlack(me|move|flips, opp&^flips, whiteToMove)
	return w, b, nil
}

// ApplyMoveUnchecked is ApplyMove without validation, for callers that
// already took move from ComputeMoves.
//
// The caller must guarantee that move is a single empty square that
// captures at least one disk. Nothing is checked and nothing is reported:
// an illegal move produces masks that do not correspond to any reachable
// position.
func ApplyMoveUnchecked(white, black, move uint64, whiteToMove bool) (uint64, uint64) {
	me, opp := meOpp(white, black, whiteToMove)
	flips := boundedFlips(move, me, opp)
	return whiteBlack(me|move|flips, opp&^flips, whiteToMove)
}
