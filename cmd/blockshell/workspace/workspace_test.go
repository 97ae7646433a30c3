package workspace

import (
	"testing"

	"blockkit/cmd/blockshell/blocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T) (*Workspace, *blocks.Registry) {
	t.Helper()
	reg := blocks.NewRegistry(blocks.DefaultCategories())
	require.NoError(t, blocks.DefineColourBlocks(reg, blocks.MessageMap{
		"COLOUR_PICKER_TOOLTIP": "DEFAULT",
		"COLOUR_BLEND_TOOLTIP":  "blend",
	}))
	_, err := reg.Define("math_number", blocks.Schema{Output: blocks.TypeNumber, Category: blocks.CategoryText})
	require.NoError(t, err)
	return New(reg), reg
}

func place(t *testing.T, ws *Workspace, kind string) *Block {
	t.Helper()
	b, err := ws.Place(kind)
	require.NoError(t, err)
	return b
}

func TestPlace_UnknownKind(t *testing.T) {
	ws, _ := newWorkspace(t)
	_, err := ws.Place("nope")
	assert.ErrorIs(t, err, blocks.ErrNotFound)
}

func TestPlace_UniqueIDs(t *testing.T) {
	ws, _ := newWorkspace(t)
	a := place(t, ws, "math_number")
	b := place(t, ws, "math_number")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, ws.Len())
}

func TestConnect_TypeChecked(t *testing.T) {
	ws, _ := newWorkspace(t)
	rgb := place(t, ws, "colour_rgb")
	num := place(t, ws, "math_number")
	random := place(t, ws, "colour_random")

	ok, err := ws.Connect(rgb.ID(), "RED", num.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	parent, has := num.ParentID()
	require.True(t, has)
	assert.Equal(t, rgb.ID(), parent)
	child, has := rgb.Input("RED")
	require.True(t, has)
	assert.Equal(t, num.ID(), child)

	ok, err = ws.Connect(rgb.ID(), "GREEN", random.ID())
	require.NoError(t, err, "a type mismatch is a rejection, not an error")
	assert.False(t, ok)
	_, has = random.ParentID()
	assert.False(t, has)
}

func TestConnect_Errors(t *testing.T) {
	ws, _ := newWorkspace(t)
	rgb := place(t, ws, "colour_rgb")
	a := place(t, ws, "math_number")
	b := place(t, ws, "math_number")

	_, err := ws.Connect("missing", "RED", a.ID())
	assert.ErrorIs(t, err, ErrUnknownInstance)

	_, err = ws.Connect(rgb.ID(), "ALPHA", a.ID())
	assert.ErrorIs(t, err, ErrUnknownSocket)

	ok, err := ws.Connect(rgb.ID(), "RED", a.ID())
	require.NoError(t, err)
	require.True(t, ok)
	_, err = ws.Connect(rgb.ID(), "RED", b.ID())
	assert.ErrorIs(t, err, ErrSocketOccupied)
}

func TestConnect_Cycle(t *testing.T) {
	ws, _ := newWorkspace(t)
	outer := place(t, ws, "colour_blend")
	inner := place(t, ws, "colour_blend")

	ok, err := ws.Connect(outer.ID(), "COLOUR1", inner.ID())
	require.NoError(t, err)
	require.True(t, ok)

	_, err = ws.Connect(inner.ID(), "COLOUR1", outer.ID())
	assert.ErrorIs(t, err, ErrCycle)
	_, err = ws.Connect(inner.ID(), "COLOUR2", inner.ID())
	assert.ErrorIs(t, err, ErrCycle)
}

func TestConnect_MovesChild(t *testing.T) {
	ws, _ := newWorkspace(t)
	first := place(t, ws, "colour_rgb")
	second := place(t, ws, "colour_rgb")
	num := place(t, ws, "math_number")

	_, err := ws.Connect(first.ID(), "RED", num.ID())
	require.NoError(t, err)
	ok, err := ws.Connect(second.ID(), "BLUE", num.ID())
	require.NoError(t, err)
	require.True(t, ok)

	_, has := first.Input("RED")
	assert.False(t, has)
	parent, _ := num.ParentID()
	assert.Equal(t, second.ID(), parent)
}

func TestChain(t *testing.T) {
	ws, _ := newWorkspace(t)
	s1 := place(t, ws, "scene_colour")
	s2 := place(t, ws, "scene_colour")
	num := place(t, ws, "math_number")

	ok, err := ws.Chain(s1.ID(), s2.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	next, has := s1.Next()
	require.True(t, has)
	assert.Equal(t, s2.ID(), next)

	ok, err = ws.Chain(s2.ID(), num.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ws.Chain(s2.ID(), s1.ID())
	assert.ErrorIs(t, err, ErrCycle)

	require.NoError(t, ws.Disconnect(s2.ID()))
	_, has = s1.Next()
	assert.False(t, has)
}

func TestRemove_LeavesChildrenTopLevel(t *testing.T) {
	ws, _ := newWorkspace(t)
	rgb := place(t, ws, "colour_rgb")
	num := place(t, ws, "math_number")
	_, err := ws.Connect(rgb.ID(), "RED", num.ID())
	require.NoError(t, err)

	require.NoError(t, ws.Remove(rgb.ID()))
	_, ok := ws.Block(rgb.ID())
	assert.False(t, ok)
	_, has := num.ParentID()
	assert.False(t, has)
	assert.ErrorIs(t, ws.Remove(rgb.ID()), ErrUnknownInstance)
}

func TestTooltip_FollowsParent(t *testing.T) {
	ws, _ := newWorkspace(t)
	blend := place(t, ws, "colour_blend")
	picker := place(t, ws, "colour_picker")
	resolver := blocks.NewTooltipResolver(ws)

	assert.Equal(t, "DEFAULT", resolver.Resolve(picker))

	ok, err := ws.Connect(blend.ID(), "COLOUR1", picker.ID())
	require.NoError(t, err)
	require.False(t, ok, "Vector does not fit a Colour socket")

	scene := place(t, ws, "scene_colour")
	ok, err = ws.Connect(scene.ID(), "COLOUR", picker.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "DEFAULT", resolver.Resolve(picker), "parent not inline")

	require.NoError(t, ws.SetInputsInline(scene.ID(), true))
	assert.Equal(t, "Change the color of the scene background", resolver.Resolve(picker))

	// Removing the parent leaves the child without one; no error, just the fallback.
	require.NoError(t, ws.Remove(scene.ID()))
	assert.Equal(t, "DEFAULT", resolver.Resolve(picker))
}

func TestWithLogger_NilFallsBackToDefault(t *testing.T) {
	_, reg := newWorkspace(t)
	ws := New(reg).WithLogger(nil)
	parent, err := ws.Place("colour_rgb")
	require.NoError(t, err)
	child, err := ws.Place("math_number")
	require.NoError(t, err)
	ok, err := ws.Connect(parent.ID(), "RED", child.ID())
	require.NoError(t, err)
	require.True(t, ok)

	_, err = reg.Define("math_number", blocks.Schema{Output: blocks.TypeString, Category: blocks.CategoryText})
	require.NoError(t, err)
	var dropped []Detached
	assert.NotPanics(t, func() { dropped = ws.Revalidate() })
	assert.Len(t, dropped, 1)
}

func TestRevalidate(t *testing.T) {
	ws, reg := newWorkspace(t)
	rgb := place(t, ws, "colour_rgb")
	num := place(t, ws, "math_number")
	num2 := place(t, ws, "math_number")
	_, err := ws.Connect(rgb.ID(), "RED", num.ID())
	require.NoError(t, err)
	_, err = ws.Connect(rgb.ID(), "GREEN", num2.ID())
	require.NoError(t, err)

	old := rgb.Kind()

	// RED now takes strings only and GREEN is gone.
	_, err = reg.Define("colour_rgb", blocks.Schema{
		Sockets: []blocks.Socket{
			blocks.ValueInput("RED", blocks.AlignRight, blocks.TypeString),
			blocks.ValueInput("BLUE", blocks.AlignRight, blocks.TypeNumber),
		},
		Output:   blocks.TypeColour,
		Category: blocks.CategoryVector,
	})
	require.NoError(t, err)

	// Until re-validated, the instance keeps the old schema.
	assert.Same(t, old, rgb.Kind())

	dropped := ws.Revalidate()
	assert.NotSame(t, old, rgb.Kind())
	assert.ElementsMatch(t, []Detached{
		{Parent: rgb.ID(), Socket: "RED", Child: num.ID()},
		{Parent: rgb.ID(), Socket: "GREEN", Child: num2.ID()},
	}, dropped)
	_, has := num.ParentID()
	assert.False(t, has)
	assert.Empty(t, ws.Revalidate())
}
