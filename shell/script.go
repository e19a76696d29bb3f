package shell

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/othello/bitboard"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/position"
)

const luaShellGlobal = "othello_shell"

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal(luaShellGlobal)
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

type handler func(*ShellController, *shellcmd) (*Response, error)

// luaCommand wraps a shell command so a script can call it with the rest
// of the command line as its only argument. Errors come back as a string
// starting with "ERROR: ".
func luaCommand(name string, h handler) lua.LGFunction {
	return func(L *lua.LState) int {
		line := strings.TrimSpace(name + " " + L.OptString(1, ""))
		sc := getShell(L)
		cmd, err := extractFields(line)
		if err == nil {
			var r *Response
			r, err = h(sc, cmd)
			if err == nil {
				if r == nil {
					L.Push(lua.LString(""))
				} else {
					L.Push(lua.LString(r.message))
				}
				return 1
			}
		}
		log.Err(err).Str("command", name).Msg("error-executing-script-command")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
}

var luaCommands = map[string]handler{
	"new":        (*ShellController).newGame,
	"load":       (*ShellController).load,
	"play":       (*ShellController).play,
	"moves":      (*ShellController).moves,
	"status":     (*ShellController).status,
	"show":       (*ShellController).show,
	"turn":       (*ShellController).turn,
	"transcript": (*ShellController).transcript,
	"perft":      (*ShellController).perft,
	"autoplay":   (*ShellController).autoplay,
	"opening":    (*ShellController).opening,
}

// State returns the current game as a table: position, side, ply, the
// legal moves, the status and the transcript.
func State(L *lua.LState) int {
	sc := getShell(L)
	p, side := sc.game.Position(), sc.game.OnTurn()
	st := sc.game.Status()

	moves := L.NewTable()
	for _, sq := range bitboard.Squares(p.Moves(side)) {
		moves.Append(lua.LString(move.IndexToAlgebraic(sq)))
	}
	t := L.NewTable()
	t.RawSetString("position", lua.LString(p.String()))
	t.RawSetString("side", lua.LString(side.String()))
	t.RawSetString("ply", lua.LNumber(sc.game.NumPlies()))
	t.RawSetString("black", lua.LNumber(p.Count(position.Black)))
	t.RawSetString("white", lua.LNumber(p.Count(position.White)))
	t.RawSetString("moves", moves)
	t.RawSetString("status", lua.LString(st.Kind.String()))
	t.RawSetString("transcript", lua.LString(sc.game.Transcript()))
	L.Push(t)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal(luaShellGlobal, lsc)
	for name, h := range luaCommands {
		L.SetGlobal("othello_"+name, L.NewFunction(luaCommand(name, h)))
	}
	L.SetGlobal("othello_state", L.NewFunction(State))
	luajson.Preload(L)

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
