// Package perft counts the move paths of a given length from a position.
// A pass is a ply of its own; two passes in a row end the game, and the
// finished position is counted as a leaf even if depth is not used up.
package perft

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/position"
	"github.com/domino14/othello/zobrist"
)

var (
	ErrNegativeDepth = errors.New("depth must not be negative")
	ErrShallowDivide = errors.New("divide needs a depth of at least 1")
)

const (
	// ctxCheckInterval is how many nodes a walker visits between checks
	// of its context.
	ctxCheckInterval = 1 << 16
	// Subtrees shallower than ttMinDepth are cheaper to walk than to look
	// up.
	ttMinDepth = 3
	// ttMaxEntries bounds the table of each walker. Once full, it is only
	// read.
	ttMaxEntries = 1 << 22
)

type Options struct {
	// Threads caps the number of root moves searched at once. Values
	// below 1 mean a single goroutine.
	Threads int
	// Unique also counts distinct leaf positions. It costs a map entry per
	// distinct leaf.
	Unique bool
	// Transpositions caches subtree counts by Zobrist key so positions
	// reached by several move orders are only walked once. Ignored when
	// Unique is set, since cached subtrees report no leaves.
	Transpositions bool
}

type Result struct {
	Nodes uint64
	// Passes is the number of pass plies on all paths.
	Passes uint64
	// Terminal is the number of leaves where the game ended early.
	Terminal uint64
	// UniqueLeaves is only set when Options.Unique is on.
	UniqueLeaves int
}

func (r *Result) add(o Result) {
	r.Nodes += o.Nodes
	r.Passes += o.Passes
	r.Terminal += o.Terminal
}

func (r Result) sub(o Result) Result {
	return Result{
		Nodes:    r.Nodes - o.Nodes,
		Passes:   r.Passes - o.Passes,
		Terminal: r.Terminal - o.Terminal,
	}
}

// DivideEntry is the count below one root move. Move is 0 for a pass.
type DivideEntry struct {
	Move  uint64
	Nodes uint64
}

func (d DivideEntry) String() string {
	return move.ToString(d.Move)
}

type ttKey struct {
	hash  uint64
	depth int
}

type walker struct {
	ctx     context.Context
	res     Result
	visited uint64
	leaves  map[uint64]struct{}

	z  *zobrist.Zobrist
	tt map[ttKey]Result
}

func newWalker(ctx context.Context, opts Options, z *zobrist.Zobrist) *walker {
	w := &walker{ctx: ctx}
	if opts.Unique {
		w.leaves = make(map[uint64]struct{})
	} else if z != nil {
		w.z = z
		w.tt = make(map[ttKey]Result)
	}
	return w
}

func sideOf(whiteToMove bool) position.Side {
	if whiteToMove {
		return position.White
	}
	return position.Black
}

func (w *walker) leaf(white, black uint64, whiteToMove bool) {
	w.res.Nodes++
	if w.leaves == nil {
		return
	}
	p := position.Position{White: white, Black: black}
	w.leaves[p.HashWithSide(sideOf(whiteToMove))] = struct{}{}
}

func (w *walker) walk(white, black uint64, whiteToMove bool, depth int, key uint64) error {
	w.visited++
	if w.visited%ctxCheckInterval == 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}
	}
	if depth == 0 {
		w.leaf(white, black, whiteToMove)
		return nil
	}
	if w.tt == nil || depth < ttMinDepth {
		return w.expand(white, black, whiteToMove, depth, key)
	}
	k := ttKey{hash: key, depth: depth}
	if r, ok := w.tt[k]; ok {
		w.res.add(r)
		return nil
	}
	before := w.res
	if err := w.expand(white, black, whiteToMove, depth, key); err != nil {
		return err
	}
	if len(w.tt) < ttMaxEntries {
		w.tt[k] = w.res.sub(before)
	}
	return nil
}

func (w *walker) expand(white, black uint64, whiteToMove bool, depth int, key uint64) error {
	me, opp := black, white
	if whiteToMove {
		me, opp = white, black
	}
	moves := bitboard.ComputeMoves(me, opp)
	if moves == 0 {
		if bitboard.ComputeMoves(opp, me) == 0 {
			w.res.Terminal++
			w.leaf(white, black, whiteToMove)
			return nil
		}
		w.res.Passes++
		if w.z != nil {
			key = w.z.AddMove(key, 0, 0, sideOf(whiteToMove))
		}
		return w.walk(white, black, !whiteToMove, depth-1, key)
	}
	for moves != 0 {
		var m uint64
		m, moves = bitboard.PopLSB(moves)
		nw, nb := bitboard.ApplyMoveUnchecked(white, black, m, whiteToMove)
		var next uint64
		if w.z != nil {
			flips := (nb ^ black) &^ m
			if whiteToMove {
				flips = (nw ^ white) &^ m
			}
			next = w.z.AddMove(key, m, flips, sideOf(whiteToMove))
		}
		if err := w.walk(nw, nb, !whiteToMove, depth-1, next); err != nil {
			return err
		}
	}
	return nil
}

type child struct {
	move         uint64
	white, black uint64
	whiteToMove  bool
}

// children returns the positions one ply below p, or nothing if p is
// finished. A forced pass is a single child with a zero move.
func children(p position.Position, side position.Side) []child {
	me, opp := p.MeOpp(side)
	moves := bitboard.ComputeMoves(me, opp)
	next := !side.IsWhite()
	if moves == 0 {
		if bitboard.ComputeMoves(opp, me) == 0 {
			return nil
		}
		return []child{{white: p.White, black: p.Black, whiteToMove: next}}
	}
	out := make([]child, 0, bitboard.Count(moves))
	for moves != 0 {
		var m uint64
		m, moves = bitboard.PopLSB(moves)
		q := p.ApplyUnchecked(m, side)
		out = append(out, child{move: m, white: q.White, black: q.Black, whiteToMove: next})
	}
	return out
}

func zobristFor(opts Options) *zobrist.Zobrist {
	if !opts.Transpositions || opts.Unique {
		return nil
	}
	z := &zobrist.Zobrist{}
	z.Initialize()
	return z
}

// split searches the subtree below each child of the root in parallel.
// The walkers come back in the same order as kids.
func split(ctx context.Context, kids []child, depth int, opts Options) ([]*walker, error) {
	z := zobristFor(opts)
	walkers := make([]*walker, len(kids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Threads, 1))
	for i, c := range kids {
		i, c := i, c
		w := newWalker(gctx, opts, z)
		walkers[i] = w
		if c.move == 0 {
			w.res.Passes++
		}
		g.Go(func() error {
			var key uint64
			if z != nil {
				key = z.Hash(position.Position{White: c.white, Black: c.black}, sideOf(c.whiteToMove))
			}
			return w.walk(c.white, c.black, c.whiteToMove, depth-1, key)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return walkers, nil
}

// Count walks every path of depth plies from p with side to move.
func Count(ctx context.Context, p position.Position, side position.Side, depth int,
	opts Options) (Result, error) {

	if depth < 0 {
		return Result{}, ErrNegativeDepth
	}
	kids := children(p, side)
	if depth == 0 || len(kids) == 0 {
		w := newWalker(ctx, opts, nil)
		if err := w.walk(p.White, p.Black, side.IsWhite(), depth, 0); err != nil {
			return Result{}, err
		}
		w.res.UniqueLeaves = len(w.leaves)
		return w.res, nil
	}
	walkers, err := split(ctx, kids, depth, opts)
	if err != nil {
		return Result{}, err
	}
	var res Result
	var seen map[uint64]struct{}
	if opts.Unique {
		seen = make(map[uint64]struct{})
	}
	for _, w := range walkers {
		res.add(w.res)
		for h := range w.leaves {
			seen[h] = struct{}{}
		}
	}
	res.UniqueLeaves = len(seen)
	log.Debug().Int("depth", depth).Uint64("nodes", res.Nodes).
		Uint64("passes", res.Passes).Uint64("terminal", res.Terminal).Msg("perft-done")
	return res, nil
}

// Divide is Count broken down by root move, sorted by square name. It is
// empty when p is finished.
func Divide(ctx context.Context, p position.Position, side position.Side, depth int,
	opts Options) ([]DivideEntry, error) {

	if depth < 1 {
		return nil, ErrShallowDivide
	}
	opts.Unique = false
	kids := children(p, side)
	walkers, err := split(ctx, kids, depth, opts)
	if err != nil {
		return nil, err
	}
	entries := make([]DivideEntry, len(kids))
	for i, c := range kids {
		entries[i] = DivideEntry{Move: c.move, Nodes: walkers[i].res.Nodes}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].String() < entries[j].String()
	})
	return entries, nil
}
