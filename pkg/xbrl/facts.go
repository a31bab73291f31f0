package xbrl

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/value"
	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

// resolveFacts turns every top-level element carrying a contextRef into a
// Fact. Elements whose context is unknown are dropped, as are unit
// references that do not resolve; neither is an error.
func resolveFacts(root *etree.Element, contexts map[string]*Context, units map[string]string, log *zap.Logger) []Fact {
	var facts []Fact
	for _, el := range root.ChildElements() {
		ref, ok := xmlnode.Attr(el, "contextRef")
		if !ok {
			continue
		}
		ctx, ok := contexts[ref]
		if !ok {
			log.Debug("Omitting fact with unknown context",
				zap.String("concept", el.Tag), zap.String("contextRef", ref))
			continue
		}

		text, _ := xmlnode.Text(el)
		fact := Fact{
			ContextID: ref,
			Context:   ctx,
			Concept:   el.Tag,
			Value:     value.Infer(text),
		}
		if decimals, ok := xmlnode.Attr(el, "decimals"); ok {
			fact.Decimals = &decimals
		}
		if unitRef, ok := xmlnode.Attr(el, "unitRef"); ok {
			if unit, ok := units[unitRef]; ok {
				fact.Unit = &unit
			} else {
				log.Debug("Unknown unit",
					zap.String("concept", el.Tag), zap.String("unitRef", unitRef))
			}
		}
		facts = append(facts, fact)
	}
	return facts
}
