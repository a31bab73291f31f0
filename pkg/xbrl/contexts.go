package xbrl

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/saranrapjs/edgar-parser/pkg/xmlnode"
)

// parseContexts builds the context table. Contexts lacking an id, an
// entity or a period are left out; duplicate ids keep the last one seen.
// dimNS is the namespace URI explicitMember elements must be in.
func parseContexts(root *etree.Element, dimNS string, log *zap.Logger) map[string]*Context {
	contexts := make(map[string]*Context)
	for _, el := range xmlnode.Children(root, "context") {
		id, ok := xmlnode.Attr(el, "id")
		if !ok {
			log.Debug("Skipping context without id", zap.Int("index", el.Index()))
			continue
		}
		ctx, ok := parseContext(el, dimNS)
		if !ok {
			log.Debug("Skipping incomplete context", zap.String("id", id))
			continue
		}
		contexts[id] = ctx
	}
	return contexts
}

func parseContext(el *etree.Element, dimNS string) (*Context, bool) {
	entity := xmlnode.FirstChild(el, "entity")
	if entity == nil {
		return nil, false
	}
	identifier, _ := xmlnode.ChildText(entity, "identifier")

	segments := []Segment{}
	for _, seg := range xmlnode.Children(entity, "segment") {
		for _, member := range seg.ChildElements() {
			if !xmlnode.HasName(member, dimNS, "explicitMember") {
				continue
			}
			dim, _ := xmlnode.Attr(member, "dimension")
			text, _ := xmlnode.Text(member)
			segments = append(segments, Segment{
				Dimension: localPart(dim),
				Member:    localPart(text),
			})
		}
	}

	period := xmlnode.FirstChild(el, "period")
	if period == nil {
		return nil, false
	}

	return &Context{
		Entity:   identifier,
		Segments: segments,
		Period: Period{
			Instant:   optionalText(period, "instant"),
			StartDate: optionalText(period, "startDate"),
			EndDate:   optionalText(period, "endDate"),
		},
	}, true
}

// localPart drops the "prefix:" from a qualified name. A name with no
// colon has no local part and yields "".
func localPart(qname string) string {
	_, local, found := strings.Cut(qname, ":")
	if !found {
		return ""
	}
	return local
}

func optionalText(el *etree.Element, tag string) *string {
	text, ok := xmlnode.ChildText(el, tag)
	if !ok {
		return nil
	}
	return &text
}
