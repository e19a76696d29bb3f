package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/othello/autoplay"
	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/gamerecord"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/opening"
	"github.com/domino14/othello/perft"
	"github.com/domino14/othello/position"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Uint64Default(key string, defaultU uint64) (uint64, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultU, nil
	}
	return strconv.ParseUint(v[0], 10, 64)
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) display() string {
	return sc.game.Position().ToDisplayText(sc.game.OnTurn())
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game = gamerecord.New(position.Start(), position.Black)
	return msg(sc.display()), nil
}

// load <hex> [w|b] sets up a position from its 32-digit form. A game
// transcript can be given with -moves instead.
func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if t := cmd.options.String("moves"); t != "" {
		r, err := gamerecord.ReplayTranscript(position.Start(), position.Black, t)
		if err != nil {
			return nil, err
		}
		sc.game = r
		return msg(sc.display()), nil
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <position> [w|b] or load -moves <transcript>")
	}
	text := cmd.args[0]
	if strings.Contains(text, "-") {
		p, side, err := position.ParseWithSide(text)
		if err != nil {
			return nil, err
		}
		sc.game = gamerecord.New(p, side)
		return msg(sc.display()), nil
	}
	p, err := position.Parse(text)
	if err != nil {
		return nil, err
	}
	side := position.Black
	if len(cmd.args) > 1 {
		if side, err = position.SideFromString(cmd.args[1]); err != nil {
			return nil, err
		}
	}
	sc.game = gamerecord.New(p, side)
	return msg(sc.display()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <square|pass> ...")
	}
	moves, err := move.ParseTranscript(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	game := sc.game.Clone()
	for _, m := range moves {
		if err := game.Play(m); err != nil {
			return nil, err
		}
	}
	sc.game = game
	out := sc.display()
	if st := sc.game.Status(); st.Terminal() {
		out += "game over: " + st.String() + "\n"
	}
	return msg(out), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	p, side := sc.game.Position(), sc.game.OnTurn()
	m := p.Moves(side)
	if m == 0 {
		return msg(position.Classify(p, side).String()), nil
	}
	names := lo.Map(bitboard.Squares(m), func(sq int, _ int) string {
		return move.IndexToAlgebraic(sq)
	})
	return msg(fmt.Sprintf("%s to move: %s", side, strings.Join(names, " "))), nil
}

func (sc *ShellController) status(cmd *shellcmd) (*Response, error) {
	p, side := sc.game.Position(), sc.game.OnTurn()
	st := sc.game.Status()
	return msg(fmt.Sprintf("%s\ncode: %d\nposition: %s\nblack %d white %d",
		st, st.Code(), p.StringWithSide(side), p.Count(position.Black), p.Count(position.White))), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.display()), nil
}

// turn <n> shows the position before ply n without changing the game.
func (sc *ShellController) turn(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: turn <ply>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	p, side, err := sc.game.PositionAt(n)
	if err != nil {
		return nil, err
	}
	return msg(p.ToDisplayText(side)), nil
}

func (sc *ShellController) transcript(cmd *shellcmd) (*Response, error) {
	if sc.game.NumPlies() == 0 {
		return msg("no moves played"), nil
	}
	return msg(sc.game.Transcript()), nil
}

func (sc *ShellController) threads(cmd *shellcmd) (int, error) {
	return cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
}

func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	depth := sc.config.GetInt(config.ConfigPerftDepth)
	if len(cmd.args) > 0 {
		d, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		depth = d
	}
	threads, err := sc.threads(cmd)
	if err != nil {
		return nil, err
	}
	opts := perft.Options{
		Threads:        threads,
		Unique:         cmd.options.Bool("unique"),
		Transpositions: cmd.options.Bool("tt"),
	}
	p, side := sc.game.Position(), sc.game.OnTurn()
	start := time.Now()

	var sb strings.Builder
	if cmd.options.Bool("divide") {
		entries, err := perft.Divide(sc.ctx, p, side, depth, opts)
		if err != nil {
			return nil, err
		}
		var total uint64
		for _, e := range entries {
			fmt.Fprintf(&sb, "%s: %d\n", e, e.Nodes)
			total += e.Nodes
		}
		fmt.Fprintf(&sb, "Total: %d\n", total)
	} else {
		res, err := perft.Count(sc.ctx, p, side, depth, opts)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "perft(%d) = %d\n", depth, res.Nodes)
		fmt.Fprintf(&sb, "passes: %d terminal: %d\n", res.Passes, res.Terminal)
		if opts.Unique {
			fmt.Fprintf(&sb, "unique leaves: %d\n", res.UniqueLeaves)
		}
	}
	log.Info().Int("depth", depth).Dur("elapsed", time.Since(start)).Msg("perft")
	return msg(sb.String()), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	games := sc.config.GetInt(config.ConfigAutoplayGames)
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		games = n
	}
	threads, err := sc.threads(cmd)
	if err != nil {
		return nil, err
	}
	seed, err := cmd.options.Uint64Default("seed", sc.config.GetUint64(config.ConfigAutoplaySeed))
	if err != nil {
		return nil, err
	}
	bins, err := cmd.options.IntDefault("bins", 15)
	if err != nil {
		return nil, err
	}
	s, err := autoplay.Run(sc.ctx, sc.game.Position(), sc.game.OnTurn(), autoplay.Options{
		Games:   games,
		Threads: threads,
		Seed:    seed,
	})
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString(s.String())
	if bins > 0 {
		sb.WriteString("\n")
		if err := s.Histogram(&sb, bins); err != nil {
			return nil, err
		}
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) opening(cmd *shellcmd) (*Response, error) {
	book, err := opening.Cached(sc.config.GetString(config.ConfigOpeningBook))
	if err != nil {
		return nil, err
	}
	if len(cmd.args) > 0 && cmd.args[0] == "list" {
		lines := lo.Map(book.Openings(), func(o *opening.Opening, _ int) string {
			return fmt.Sprintf("%-14s %-14s %s", o.Name(), o.Family(), o.Transcript())
		})
		return msg(strings.Join(lines, "\n")), nil
	}
	start, first, _ := sc.game.PositionAt(0)
	if start != position.Start() || first != position.Black {
		return msg("opening: none (game is not from the start position)"), nil
	}
	moves := sc.game.Moves()
	var sb strings.Builder
	if o := book.Find(moves); o != nil {
		fmt.Fprintf(&sb, "opening: %s\n", o)
	} else {
		sb.WriteString("opening: none\n")
	}
	possible := lo.Filter(book.Possible(moves), func(o *opening.Opening, _ int) bool {
		return len(o.Moves()) > len(moves)
	})
	if len(possible) > 0 {
		names := lo.Map(possible, func(o *opening.Opening, _ int) string { return o.Name() })
		fmt.Fprintf(&sb, "still possible: %s\n", strings.Join(names, ", "))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	sc.config.Set(key, value)
	if err := sc.config.Write(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return msg(fmt.Sprintf("set config %s to %s and saved to file", key, value)), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}
