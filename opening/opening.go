// Package opening names the first moves of a game from the standard start
// position. The four first moves are mirror images of one another, so the
// book only stores lines starting with f5 and rotates other games onto it.
package opening

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/cache"
	"github.com/domino14/othello/gamerecord"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/position"
)

//go:embed book.yaml
var defaultBook []byte

var (
	ErrDuplicateOpening = errors.New("duplicate opening")
	ErrNotNormalized    = errors.New("opening must start with f5")
	ErrEmptyOpening     = errors.New("opening has no moves")
)

var f5 = move.MustSquare("f5")

type entry struct {
	Name   string `yaml:"name"`
	Family string `yaml:"family"`
	Moves  string `yaml:"moves"`
}

// An Opening is a named sequence of moves from the start position.
type Opening struct {
	name   string
	family string
	moves  []uint64
}

func (o *Opening) Name() string {
	return o.name
}

// Family is the name of the three-move family the opening belongs to, or
// the opening's own name for the family roots.
func (o *Opening) Family() string {
	if o.family == "" {
		return o.name
	}
	return o.family
}

// Moves returns a copy of the opening's moves.
func (o *Opening) Moves() []uint64 {
	return append([]uint64(nil), o.moves...)
}

func (o *Opening) Transcript() string {
	return move.FormatTranscript(o.moves)
}

func (o *Opening) String() string {
	return fmt.Sprintf("%s (%s)", o.name, o.Transcript())
}

type Book struct {
	openings []*Opening
}

// NewBook loads the built-in book.
func NewBook() (*Book, error) {
	return Load(defaultBook)
}

// Load reads a YAML book. Every line is replayed from the start position
// and must begin with f5.
func Load(data []byte) (*Book, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if dups := lo.FindDuplicatesBy(entries, func(e entry) string { return e.Name }); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateOpening, dups[0].Name)
	}
	b := &Book{}
	for _, e := range entries {
		moves, err := move.ParseTranscript(e.Moves)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", e.Name, err)
		}
		if len(moves) == 0 {
			return nil, fmt.Errorf("opening %q: %w", e.Name, ErrEmptyOpening)
		}
		if moves[0] != f5 {
			return nil, fmt.Errorf("opening %q: %w", e.Name, ErrNotNormalized)
		}
		if _, err := gamerecord.Replay(position.Start(), position.Black, moves); err != nil {
			return nil, fmt.Errorf("opening %q: %w", e.Name, err)
		}
		b.openings = append(b.openings, &Opening{name: e.Name, family: e.Family, moves: moves})
	}
	return b, nil
}

// LoadFile reads a YAML book from disk.
func LoadFile(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Cached returns the book at path, reading it only the first time. An
// empty path names the built-in book.
func Cached(path string) (*Book, error) {
	obj, err := cache.Load("opening-book:"+path, func(string) (interface{}, error) {
		if path == "" {
			return NewBook()
		}
		return LoadFile(path)
	})
	if err != nil {
		return nil, err
	}
	return obj.(*Book), nil
}

// Openings returns every opening in book order.
func (b *Book) Openings() []*Opening {
	return append([]*Opening(nil), b.openings...)
}

// Normalize maps a game from the start position onto the one starting with
// f5. The returned symmetry leaves the start position unchanged.
func Normalize(moves []uint64) ([]uint64, bitboard.Symmetry) {
	sym := bitboard.Identity
	if len(moves) > 0 && moves[0] != 0 {
		start := position.Start()
		for s := bitboard.Identity; s < bitboard.NumSymmetries; s++ {
			if s.Apply(moves[0]) == f5 && start.Transform(s) == start {
				sym = s
				break
			}
		}
	}
	return lo.Map(moves, func(m uint64, _ int) uint64 { return sym.Apply(m) }), sym
}

// Find returns the most specific opening the moves have played into, or
// nil.
func (b *Book) Find(moves []uint64) *Opening {
	norm, _ := Normalize(moves)
	matches := lo.Filter(b.openings, func(o *Opening, _ int) bool {
		return lo.HasPrefix(norm, o.moves)
	})
	if len(matches) == 0 {
		return nil
	}
	return lo.MaxBy(matches, func(a, b *Opening) bool {
		return len(a.moves) > len(b.moves)
	})
}

// Possible returns the openings that can still be reached after moves. An
// empty move list matches the whole book.
func (b *Book) Possible(moves []uint64) []*Opening {
	norm, _ := Normalize(moves)
	return lo.Filter(b.openings, func(o *Opening, _ int) bool {
		return lo.HasPrefix(o.moves, norm)
	})
}
