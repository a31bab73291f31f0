package xbrl

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

// parseUnits maps each unit id to its measure. A unit without an id is
// kept under "" and a later unit with the same id replaces an earlier one.
func parseUnits(root *etree.Element, log *zap.Logger) map[string]string {
	units := make(map[string]string)
	for _, el := range xmlnode.Children(root, "unit") {
		id, ok := xmlnode.Attr(el, "id")
		if !ok {
			log.Debug("Unit without id", zap.Int("index", el.Index()))
		}
		units[id] = measure(el)
	}
	return units
}

func measure(unit *etree.Element) string {
	if divide := xmlnode.FirstChild(unit, "divide"); divide != nil {
		num, _ := xmlnode.ChildText(xmlnode.FirstChild(divide, "unitNumerator"), "measure")
		den, _ := xmlnode.ChildText(xmlnode.FirstChild(divide, "unitDenominator"), "measure")
		return num + "/" + den
	}
	m, _ := xmlnode.ChildText(unit, "measure")
	return m
}
