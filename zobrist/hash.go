package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/position"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for an othello position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	whiteToMove uint64
	// posTable is indexed by square, then by side.
	posTable [bitboard.NumSquares][2]uint64
}

func (z *Zobrist) Initialize() {
	for i := range z.posTable {
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) Hash(p position.Position, onTurn position.Side) uint64 {
	key := uint64(0)
	for _, sq := range bitboard.Squares(p.Black) {
		key ^= z.posTable[sq][position.Black]
	}
	for _, sq := range bitboard.Squares(p.White) {
		key ^= z.posTable[sq][position.White]
	}
	if onTurn == position.White {
		key ^= z.whiteToMove
	}
	return key
}

// AddMove updates key for mover placing a disk on m and turning over the
// disks in flips. m is 0 for a pass. The side to move always changes.
func (z *Zobrist) AddMove(key uint64, m, flips uint64, mover position.Side) uint64 {
	if m != 0 {
		sq, _ := bitboard.Index(m)
		key ^= z.posTable[sq][mover]
		opp := mover.Opponent()
		for flips != 0 {
			var f uint64
			f, flips = bitboard.PopLSB(flips)
			sq, _ := bitboard.Index(f)
			key ^= z.posTable[sq][opp] ^ z.posTable[sq][mover]
		}
	}
	return key ^ z.whiteToMove
}
