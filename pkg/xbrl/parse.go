// Package xbrl decodes XBRL instance documents into facts joined to their
// contexts and units.
package xbrl

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

// DimensionPrefix is the prefix whose root-level namespace declaration
// identifies explicitMember elements.
const DimensionPrefix = "xbrldi"

type options struct {
	log *zap.Logger
}

// Option configures Parse.
type Option func(*options)

// WithLogger sends the decoder's debug output to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Parse decodes an XBRL instance. Malformed XML is the only error; facts
// that cannot be linked to a context are omitted from the result.
func Parse(text string, opts ...Option) (*Document, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	root, err := xmlnode.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse xbrl: %w", err)
	}

	dimNS := xmlnode.RootNamespace(root, DimensionPrefix)
	units := parseUnits(root, o.log)
	contexts := parseContexts(root, dimNS, o.log)
	facts := resolveFacts(root, contexts, units, o.log)

	o.log.Debug("Decoded xbrl instance",
		zap.String("root", root.Tag),
		zap.Int("units", len(units)),
		zap.Int("contexts", len(contexts)),
		zap.Int("facts", len(facts)))

	return &Document{
		facts:    facts,
		contexts: contexts,
		units:    units,
	}, nil
}
