package blocks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	reg := NewRegistry(DefaultCategories())

	a, err := reg.Define("colour_picker", Schema{Output: TypeVector, Category: CategoryVector, Tooltip: StaticTooltip("A")})
	require.NoError(t, err)
	b, err := reg.Define("colour_picker", Schema{Output: TypeColour, Category: CategoryColour, Tooltip: StaticTooltip("B")})
	require.NoError(t, err)

	got, ok := reg.Lookup("colour_picker")
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.NotSame(t, a, got)
	assert.Equal(t, 1, reg.Len())

	// The old definition is untouched; holders of it keep its schema.
	assert.Equal(t, TypeVector, a.Output())
	assert.Equal(t, "A", a.Tooltip().Text())
}

func TestRegistry_LookupMissing(t *testing.T) {
	reg := NewRegistry(DefaultCategories())
	kind, ok := reg.Lookup("nope")
	assert.False(t, ok)
	assert.Nil(t, kind)
}

func TestRegistry_NilLoggerFallsBackToDefault(t *testing.T) {
	reg := NewRegistry(DefaultCategories()).WithLogger(nil)
	assert.NotPanics(t, func() {
		_, err := reg.Define("x", Schema{Output: TypeNumber, Category: CategoryText})
		require.NoError(t, err)
		_, err = reg.Define("x", Schema{Output: TypeString, Category: CategoryText})
		require.NoError(t, err)
	})
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_DefineFailureLeavesRegistryUnchanged(t *testing.T) {
	reg := NewRegistry(DefaultCategories())
	good, err := reg.Define("x", Schema{Output: TypeNumber, Category: CategoryText})
	require.NoError(t, err)

	_, err = reg.Define("x", Schema{Category: CategoryText})
	requireSchemaError(t, err, ErrNoOutputOrChaining)

	got, ok := reg.Lookup("x")
	require.True(t, ok)
	assert.Same(t, good, got)
}

func TestRegistry_All(t *testing.T) {
	reg := NewRegistry(DefaultCategories())
	require.NoError(t, DefineColourBlocks(reg, MessageMap{}))

	seen := map[string]bool{}
	for name, kind := range reg.All() {
		assert.Equal(t, name, kind.Name())
		seen[name] = true
	}
	assert.Len(t, seen, reg.Len())
	assert.Equal(t, []string{
		"colour_blend", "colour_picker", "colour_random",
		"colour_rgb", "scene_colour", "texture_picker",
	}, reg.Names())

	// Early break stops the sequence.
	n := 0
	for range reg.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestRegistry_ConcurrentReadsDuringRegister(t *testing.T) {
	reg := NewRegistry(DefaultCategories())
	kind, err := NewBlockKind("k", Schema{Output: TypeNumber, Category: CategoryText}, reg.Categories())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Register("k", kind)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Lookup("k")
				for range reg.All() {
				}
			}
		}()
	}
	wg.Wait()

	got, ok := reg.Lookup("k")
	require.True(t, ok)
	assert.Same(t, kind, got)
}
