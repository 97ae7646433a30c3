package blocksyaml

import (
	"errors"
	"fmt"
	"log/slog"

	"blockkit/cmd/blockshell/blocks"
)

// ApplyCategories binds the category colours declared in docs. Later
// documents win. It must run before any block kind is built.
func ApplyCategories(cats *blocks.Categories, docs ...Document) error {
	for _, doc := range docs {
		for cat, colour := range doc.Categories {
			if err := cats.Bind(cat, colour); err != nil {
				return fmt.Errorf("phase=parse path=categories.%s: %w", cat, err)
			}
		}
	}
	return nil
}

// Report lists what Define did.
type Report struct {
	Defined []string
	// Skipped maps a block name to the *SchemaError that kept it out of the registry.
	Skipped map[string]error
}

// Err joins the skip reasons, or returns nil if nothing was skipped.
func (r Report) Err() error {
	var errs []error
	for _, err := range r.Skipped {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Define builds and registers every block kind in docs, in document order.
// A name defined again in a later document replaces the earlier definition.
// Kinds that fail schema validation are logged and skipped; the rest of the
// palette is still registered.
func Define(reg *blocks.Registry, msgs blocks.Messages, logger *slog.Logger, docs ...Document) Report {
	if logger == nil {
		logger = slog.Default()
	}
	report := Report{Skipped: map[string]error{}}
	for _, doc := range docs {
		for _, name := range doc.BlockNames() {
			schema := doc.blocks[name].resolveSchema(msgs)
			if _, err := reg.Define(name, schema); err != nil {
				logger.Warn("skipping block definition", "block", name, "error", err)
				report.Skipped[name] = err
				continue
			}
			delete(report.Skipped, name)
			report.Defined = append(report.Defined, name)
		}
	}
	return report
}

// LoadMany parses the inputs, binds their categories into the registry's
// table, merges their messages and defines their blocks. Parse and category
// errors abort; schema errors are reported per block.
func LoadMany(reg *blocks.Registry, logger *slog.Logger, inputs ...[]byte) (Report, Messages, error) {
	docs := make([]Document, 0, len(inputs))
	for _, in := range inputs {
		doc, err := Parse(in)
		if err != nil {
			return Report{}, nil, err
		}
		docs = append(docs, doc)
	}
	if err := ApplyCategories(reg.Categories(), docs...); err != nil {
		return Report{}, nil, err
	}
	msgs := MergeMessages(docs...)
	return Define(reg, msgs, logger, docs...), msgs, nil
}
