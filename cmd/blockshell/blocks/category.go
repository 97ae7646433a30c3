package blocks

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Category is a display grouping. All block kinds of one category share a hue.
type Category string

const (
	CategoryColour  Category = "colour"
	CategoryTexture Category = "texture"
	CategoryVector  Category = "vector"
	CategoryText    Category = "text"
)

var allCategories = []Category{CategoryColour, CategoryTexture, CategoryVector, CategoryText}

// Known reports whether c belongs to the fixed category enumeration.
func (c Category) Known() bool { return slices.Contains(allCategories, c) }

// AllCategories returns the fixed category enumeration.
func AllCategories() []Category { return slices.Clone(allCategories) }

// Saturation and value used to turn a bare hue number into an RGB colour.
const (
	hueSaturation = 0.45
	hueValue      = 0.65
)

// Colour is a display colour bound to a category.
type Colour struct {
	c colorful.Color
}

// HueColour converts a hue in degrees to a colour using the editor's fixed
// saturation and value.
func HueColour(hue float64) Colour {
	return Colour{c: colorful.Hsv(hue, hueSaturation, hueValue)}
}

// ParseColour accepts "#rrggbb" or a hue in degrees ("230").
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Colour{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return Colour{c: c}, nil
	}
	hue, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Colour{}, fmt.Errorf("invalid colour %q: expected #rrggbb or a hue in degrees", s)
	}
	if math.IsNaN(hue) || hue < 0 || hue > 360 {
		return Colour{}, fmt.Errorf("invalid colour %q: hue must be within 0..360", s)
	}
	return HueColour(hue), nil
}

// MustParseColour is ParseColour for package-level constants.
func MustParseColour(s string) Colour {
	c, err := ParseColour(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as "#rrggbb".
func (c Colour) Hex() string { return c.c.Hex() }

// RGB255 returns the 8-bit channels.
func (c Colour) RGB255() (r, g, b uint8) { return c.c.RGB255() }

func (c Colour) String() string { return c.Hex() }

// Categories binds each category to its colour. Bindings are made once at
// startup; afterwards the table is only read.
type Categories struct {
	mu   sync.RWMutex
	hues map[Category]Colour
}

// NewCategories returns a table with no bindings.
func NewCategories() *Categories {
	return &Categories{hues: make(map[Category]Colour)}
}

// DefaultCategories returns a table bound to the stock hues.
func DefaultCategories() *Categories {
	cats := NewCategories()
	cats.hues[CategoryColour] = MustParseColour("#26A69A")
	cats.hues[CategoryTexture] = HueColour(20)
	cats.hues[CategoryVector] = HueColour(230)
	cats.hues[CategoryText] = HueColour(160)
	return cats
}

// Bind sets the colour of a category. Rebinding replaces the previous colour
// for block kinds constructed afterwards.
func (c *Categories) Bind(cat Category, colour Colour) error {
	if !cat.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hues[cat] = colour
	return nil
}

// HueOf returns the colour bound to cat. An unknown or unbound category is a
// *SchemaError, since the only caller that can hit it is block construction.
func (c *Categories) HueOf(cat Category) (Colour, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	colour, ok := c.hues[cat]
	if !ok {
		return Colour{}, schemaErrorf("", ErrUnknownCategory, "%q", cat)
	}
	return colour, nil
}
