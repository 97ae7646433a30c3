package blocksyaml

import (
	"regexp"
	"slices"

	"blockkit/cmd/blockshell/blocks"
)

// Messages is a message table loaded from the `messages` key.
// A missing key comes back as the key itself so untranslated text stays visible.
type Messages map[string]string

func (m Messages) Message(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// MergeMessages merges the message tables of docs. Later documents win.
func MergeMessages(docs ...Document) Messages {
	out := Messages{}
	for _, doc := range docs {
		for k, v := range doc.Messages {
			out[k] = v
		}
	}
	return out
}

// msgRefRe matches a message reference: %{BKY_<KEY>}
//
// Valid examples: %{BKY_COLOUR_RGB_TOOLTIP}, %{BKY_colour_red}
var msgRefRe = regexp.MustCompile(`%\{BKY_([A-Za-z0-9_]+)\}`)

// substituteRefs replaces every message reference in s with its text from msgs.
func substituteRefs(s string, msgs blocks.Messages) string {
	return msgRefRe.ReplaceAllStringFunc(s, func(match string) string {
		key := msgRefRe.FindStringSubmatch(match)[1]
		return msgs.Message(key)
	})
}

// resolveSchema returns the block's schema with every message reference in
// display strings resolved through msgs.
func (d blockDef) resolveSchema(msgs blocks.Messages) blocks.Schema {
	s := d.schema
	s.HelpURL = substituteRefs(s.HelpURL, msgs)

	tip := substituteRefs(d.tooltip, msgs)
	if d.inheritParent {
		s.Tooltip = blocks.DynamicTooltip(blocks.InheritParentTooltip(tip))
	} else {
		s.Tooltip = blocks.StaticTooltip(tip)
	}

	s.Sockets = make([]blocks.Socket, len(d.schema.Sockets))
	for i, sock := range d.schema.Sockets {
		fields := slices.Clone(sock.Fields)
		for j := range fields {
			fields[j].Text = substituteRefs(fields[j].Text, msgs)
			fields[j].Options = slices.Clone(fields[j].Options)
			for k := range fields[j].Options {
				fields[j].Options[k].Label = substituteRefs(fields[j].Options[k].Label, msgs)
			}
		}
		sock.Fields = fields
		s.Sockets[i] = sock
	}
	return s
}
