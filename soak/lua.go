package soak

import (
	"fmt"

	"github.com/plus3/blockfall/tetris"
	lua "github.com/yuin/gopher-lua"
)

// LuaBot delegates decisions to a Lua script defining a global
// decide(state). The function returns an intent name such as "hardDrop", or
// nil to wait for the next frame.
//
// state carries score, level, lines, kind, x, y, rotation, ghost_y, can_hold,
// board_width, board_height and heights (1-indexed by column). kind is nil
// and the position fields are absent when there is no active piece; ghost_y
// is absent when the piece already rests.
type LuaBot struct {
	L      *lua.LState
	decide lua.LValue
}

// NewLuaBot runs source and looks up its decide function.
func NewLuaBot(source string) (*LuaBot, error) {
	L := lua.NewState()
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua bot: %w", err)
	}
	return newLuaBot(L)
}

// LoadLuaBot runs the script at path and looks up its decide function.
func LoadLuaBot(path string) (*LuaBot, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua bot %s: %w", path, err)
	}
	return newLuaBot(L)
}

func newLuaBot(L *lua.LState) (*LuaBot, error) {
	fn := L.GetGlobal("decide")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("lua bot: global decide is a %s, want function", fn.Type())
	}
	return &LuaBot{L: L, decide: fn}, nil
}

func (b *LuaBot) Close() {
	b.L.Close()
}

func (b *LuaBot) Decide(snap tetris.Snapshot) (tetris.Intent, bool, error) {
	state := b.state(snap)
	if err := b.L.CallByParam(lua.P{Fn: b.decide, NRet: 1, Protect: true}, state); err != nil {
		return 0, false, fmt.Errorf("lua decide: %w", err)
	}
	ret := b.L.Get(-1)
	b.L.Pop(1)

	switch ret.Type() {
	case lua.LTNil:
		return 0, false, nil
	case lua.LTString:
		in, err := tetris.ParseIntent(ret.String())
		if err != nil {
			return 0, false, fmt.Errorf("lua decide: %w", err)
		}
		return in, true, nil
	}
	return 0, false, fmt.Errorf("lua decide returned a %s, want string or nil", ret.Type())
}

func (b *LuaBot) state(snap tetris.Snapshot) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("score", lua.LNumber(snap.Score))
	t.RawSetString("level", lua.LNumber(snap.Level))
	t.RawSetString("lines", lua.LNumber(snap.Lines))
	t.RawSetString("can_hold", lua.LBool(snap.CanHold))
	t.RawSetString("board_width", lua.LNumber(snap.Width))
	t.RawSetString("board_height", lua.LNumber(snap.Height))

	if p := snap.Active; p != nil {
		t.RawSetString("kind", lua.LString(p.Kind.String()))
		t.RawSetString("x", lua.LNumber(p.Position.X))
		t.RawSetString("y", lua.LNumber(p.Position.Y))
		t.RawSetString("rotation", lua.LNumber(p.Rotation))
	}
	if snap.Ghost != nil {
		t.RawSetString("ghost_y", lua.LNumber(snap.Ghost.Position.Y))
	}

	heights := b.L.NewTable()
	for i, h := range snap.ColumnHeights() {
		heights.RawSetInt(i+1, lua.LNumber(h))
	}
	t.RawSetString("heights", heights)
	return t
}
