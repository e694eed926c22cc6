package shell

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("barragoon_shell")
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

// Run executes a shell command line and returns its text output.
func Run(L *lua.LState) int {
	line := L.ToString(1)
	sc := getShell(L)
	r, err := sc.dispatch(line)
	if err != nil {
		log.Err(err).Str("line", line).Msg("error-executing-command")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

// JSON executes a shell command line and returns its result as a Lua
// value, or nil and an error message.
func JSON(L *lua.LState) int {
	line := L.ToString(1)
	sc := getShell(L)
	r, err := sc.dispatch(line)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	var data any
	if r != nil {
		data = r.data
		if data == nil {
			data = r.message
		}
	}
	bts, err := json.Marshal(data)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	val, err := luajson.Decode(L, bts)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(val)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("barragoon_shell", lsc)
	L.SetGlobal("barragoon_run", L.NewFunction(Run))
	L.SetGlobal("barragoon_json", L.NewFunction(JSON))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was an error")
		return nil, err
	}
	return msg("script " + filepath + " finished"), nil
}
