package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"perft": {
		Options: []string{"-divide", "-unique", "-tt", "-threads"},
	},
	"autoplay": {
		Options: []string{"-seed", "-threads", "-bins"},
	},
	"load": {
		Options: []string{"-moves"},
		Args:    []string{"w", "b"},
	},
	"opening": {
		Args: []string{"list"},
	},
	"help": {
		Args: []string{"load", "play", "perft", "autoplay", "opening", "script"},
	},
	"setconfig": {
		Args: []string{"debug", "threads", "perft-depth", "autoplay-games",
			"autoplay-seed", "opening-book", "history-file", "cpu-profile"},
	},
}

var commandNames = []string{
	"new", "load", "play", "moves", "status", "show", "turn", "transcript",
	"perft", "autoplay", "opening", "setconfig", "script", "help", "exit",
}

var boolValues = []string{"true", "false"}

// legalMoves returns the squares the side on turn can play, plus "pass"
// when it has none.
func (c *ShellCompleter) legalMoves() []string {
	p, side := c.sc.game.Position(), c.sc.game.OnTurn()
	sqs := bitboard.Squares(p.Moves(side))
	if len(sqs) == 0 {
		return []string{move.Pass}
	}
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = move.IndexToAlgebraic(sq)
	}
	return out
}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes; fall back to plain splitting.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "divide", "unique", "tt":
				completions = boolValues
			}
		}

		if completions == nil && (cmdName == "play" || cmdName == "p") {
			completions = c.legalMoves()
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
