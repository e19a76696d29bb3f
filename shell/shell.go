package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/gamerecord"
	"github.com/domino14/othello/position"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errExitShell         = errors.New("exit shell")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	out    io.Writer

	execPath   string
	gitVersion string

	game *gamerecord.Record

	ctx    context.Context
	cancel context.CancelFunc
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeLine(w io.Writer, msg string) {
	io.WriteString(w, msg)
	if !strings.HasSuffix(msg, "\n") {
		io.WriteString(w, "\n")
	}
}

// NewShellController sets up a controller with a fresh game. The
// readline instance is only created when Loop runs.
func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	ctx, cancel := context.WithCancel(context.Background())
	return &ShellController{
		config:     cfg,
		out:        os.Stdout,
		execPath:   execPath,
		gitVersion: gitVersion,
		game:       gamerecord.New(position.Start(), position.Black),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (sc *ShellController) showMessage(msg string) {
	writeLine(sc.out, msg)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its arguments and its
// options. Every option takes a value: "perft 5 -divide true".
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if isOption(fields[idx]) {
			if idx+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// isOption tells "-seed" from a negative number or a lone dash.
func isOption(field string) bool {
	if len(field) < 2 || field[0] != '-' || field == "--" {
		return false
	}
	_, err := strconv.Atoi(field)
	return err != nil
}

func (sc *ShellController) standardModeSwitch(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errExitShell
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "load":
		return sc.load(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "moves":
		return sc.moves(cmd)
	case "status":
		return sc.status(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "turn":
		return sc.turn(cmd)
	case "transcript":
		return sc.transcript(cmd)
	case "perft":
		return sc.perft(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "opening":
		return sc.opening(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unknown command %q; try help", cmd.cmd)
	}
}

// Execute runs a single command line and prints its result.
func (sc *ShellController) Execute(line string) {
	resp, err := sc.standardModeSwitch(line)
	if errors.Is(err, errExitShell) {
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mothello>\033[0m ",
		HistoryFile:     sc.config.GetString(config.ConfigHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not start readline")
		sig <- syscall.SIGINT
		return
	}
	sc.l = l
	sc.out = l.Stdout()
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line)
		if errors.Is(err, errExitShell) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any running perft or autoplay.
func (sc *ShellController) Cleanup() {
	sc.cancel()
}
