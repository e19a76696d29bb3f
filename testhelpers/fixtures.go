// Package testhelpers holds games and generators shared by the tests of
// several packages. It must not import any package of this module.
package testhelpers

import "lukechampine.com/frand"

// FullGame is a complete game in which black has to pass twice near the
// end. White wins 38 to 26.
const FullGame = "d3c3b3e3f3c5f6g2b5c6f4a5h1f5d6e7d7e6d8c4c7b7a8b6a4f8g4b4e8a3a7g5" +
	"g8c2h4g3a2h3c1d1d2e1f1f7a6h6e2b8g7c8h5g6h2h7h8g1b2f2--a1--b1"

// FullGameFinal is the position at the end of FullGame.
const FullGameFinal = "063e5a6e7a7e667ff9c1a59185819980"

// FullGameFirstPass is the position in FullGame right before black's
// first pass.
const FullGameFirstPass = "063e5a6e7a7a6040f9c1a59185859fbc"

// Wipeout is the shortest kind of game: black takes every white disk on
// move 9 and wins 13 to 0.
const Wipeout = "d3c3f5f4f3d2d1e3b3"

// RandomMasks returns two disjoint random masks. About half the board is
// covered by each call's first mask.
func RandomMasks() (uint64, uint64) {
	me := frand.Uint64n(1<<64 - 1)
	opp := frand.Uint64n(1<<64-1) &^ me
	return me, opp
}
