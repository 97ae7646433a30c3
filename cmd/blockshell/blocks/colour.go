package blocks

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var textureOptions = []string{
	"earth", "flower", "granite", "gravel", "rock", "rough",
	"rug", "stones", "stucco", "wood", "wood_old", "metal",
}

func label(text string) Field { return Field{Kind: FieldLabel, Text: text} }

// ColourSchemas returns the stock colour block kinds, with display text taken
// from msg.
//
// colour_picker outputs Vector while sitting in the vector category; output
// type and category are unrelated.
func ColourSchemas(msg Messages) map[string]Schema {
	options := make([]Option, len(textureOptions))
	for i, o := range textureOptions {
		options[i] = Option{Label: o, Value: o}
	}

	return map[string]Schema{
		"colour_picker": {
			Sockets: []Socket{
				DummyInput("", Field{Kind: FieldColour, Name: "COLOUR", Default: "#ffffff"}),
			},
			Output:   TypeVector,
			Category: CategoryVector,
			Tooltip:  DynamicTooltip(InheritParentTooltip(msg.Message("COLOUR_PICKER_TOOLTIP"))),
			HelpURL:  msg.Message("COLOUR_PICKER_HELPURL"),
		},
		"texture_picker": {
			Sockets: []Socket{
				DummyInput("",
					label("texture"),
					Field{Kind: FieldDropdown, Name: "TEXTURE_SELECTION", Default: options[0].Value, Options: options},
				),
			},
			Output:   TypeString,
			Category: CategoryText,
			HelpURL:  "http://www.example.com/",
		},
		"colour_random": {
			Sockets:  []Socket{DummyInput("", label(msg.Message("COLOUR_RANDOM_TITLE")))},
			Output:   TypeColour,
			Category: CategoryVector,
			Tooltip:  StaticTooltip(msg.Message("COLOUR_RANDOM_TOOLTIP")),
			HelpURL:  msg.Message("COLOUR_RANDOM_HELPURL"),
		},
		"colour_rgb": {
			Sockets: []Socket{
				ValueInput("RED", AlignRight, TypeNumber).WithFields(
					label(msg.Message("COLOUR_RGB_TITLE")), label(msg.Message("COLOUR_RGB_RED"))),
				ValueInput("GREEN", AlignRight, TypeNumber).WithFields(label(msg.Message("COLOUR_RGB_GREEN"))),
				ValueInput("BLUE", AlignRight, TypeNumber).WithFields(label(msg.Message("COLOUR_RGB_BLUE"))),
			},
			Output:   TypeColour,
			Category: CategoryVector,
			Tooltip:  StaticTooltip(msg.Message("COLOUR_RGB_TOOLTIP")),
			HelpURL:  msg.Message("COLOUR_RGB_HELPURL"),
		},
		"colour_blend": {
			Sockets: []Socket{
				ValueInput("COLOUR1", AlignRight, TypeColour).WithFields(
					label(msg.Message("COLOUR_BLEND_TITLE")), label(msg.Message("COLOUR_BLEND_COLOUR1"))),
				ValueInput("COLOUR2", AlignRight, TypeColour).WithFields(label(msg.Message("COLOUR_BLEND_COLOUR2"))),
				ValueInput("RATIO", AlignRight, TypeNumber).WithFields(label(msg.Message("COLOUR_BLEND_RATIO"))),
			},
			Output:   TypeColour,
			Category: CategoryVector,
			Tooltip:  StaticTooltip(msg.Message("COLOUR_BLEND_TOOLTIP")),
			HelpURL:  msg.Message("COLOUR_BLEND_HELPURL"),
		},
		"scene_colour": {
			Sockets: []Socket{
				ValueInput("COLOUR", AlignLeft, TypeVector).WithFields(label("scene color")),
			},
			Chaining: Chaining{AcceptsPrevious: true, AcceptsNext: true},
			Category: CategoryColour,
			Tooltip:  StaticTooltip("Change the color of the scene background"),
		},
	}
}

// DefineColourBlocks registers the stock colour block kinds.
// Kinds that fail to build are skipped and reported together.
func DefineColourBlocks(reg *Registry, msg Messages) error {
	schemas := ColourSchemas(msg)
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(schemas)) {
		if _, err := reg.Define(name, schemas[name]); err != nil {
			errs = append(errs, fmt.Errorf("define %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
