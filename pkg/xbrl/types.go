package xbrl

import (
	"encoding/json"
	"fmt"

	"github.com/saranrapjs/edgar-parser/pkg/value"
)

// Document is a decoded XBRL instance: its facts in document order, plus
// the context and unit tables they were resolved against.
type Document struct {
	facts    []Fact
	contexts map[string]*Context
	units    map[string]string
}

// Facts returns every resolved fact, in the order the instance lists them.
func (d *Document) Facts() []Fact {
	return d.facts
}

// Context returns the context registered under id.
func (d *Document) Context(id string) (*Context, bool) {
	c, ok := d.contexts[id]
	return c, ok
}

// Contexts returns the number of distinct contexts in the instance.
func (d *Document) Contexts() int {
	return len(d.contexts)
}

// Unit returns the measure registered under the unit id. Ratio units read
// "numerator/denominator".
func (d *Document) Unit(id string) (string, bool) {
	u, ok := d.units[id]
	return u, ok
}

// Search returns the first fact matching predicate, or nil.
func (d *Document) Search(predicate func(f *Fact) bool) *Fact {
	for i := range d.facts {
		if predicate(&d.facts[i]) {
			return &d.facts[i]
		}
	}
	return nil
}

// Filter returns every fact matching predicate.
func (d *Document) Filter(predicate func(f *Fact) bool) []*Fact {
	var filtered []*Fact
	for i := range d.facts {
		if predicate(&d.facts[i]) {
			filtered = append(filtered, &d.facts[i])
		}
	}
	return filtered
}

func (d *Document) MarshalJSON() ([]byte, error) {
	facts := d.facts
	if facts == nil {
		facts = []Fact{}
	}
	return json.Marshal(struct {
		Facts []Fact `json:"facts"`
	}{facts})
}

// Fact is one reported value: a concept measured in a context, optionally
// with a unit and a precision.
type Fact struct {
	ContextID string      `json:"contextRef"`
	Context   *Context    `json:"context"`
	Concept   string      `json:"concept"`
	Value     value.Value `json:"value"`
	Decimals  *string     `json:"decimals,omitempty"`
	Unit      *string     `json:"unit,omitempty"`
}

// Context represents xbrli:context elements. These qualify facts with the
// reporting entity, the period and any dimensional segments. Facts citing
// the same context id share one *Context.
type Context struct {
	Entity   string    `json:"entity"`
	Segments []Segment `json:"segments"`
	Period   Period    `json:"period"`
}

// Segment represents one xbrldi:explicitMember, with the namespace prefixes
// removed from both the axis and the member.
type Segment struct {
	Dimension string `json:"dimension"`
	Member    string `json:"member"`
}

// Period represents xbrli:period elements within contexts. These define the
// time period for a fact, either as an instant in time or a duration with
// start and end dates. Nothing stops all three from being set.
type Period struct {
	Instant   *string `json:"instant,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

func (p Period) IsInstant() bool {
	return p.Instant != nil
}

func (p Period) IsDuration() bool {
	return p.StartDate != nil && p.EndDate != nil
}

func (p Period) FormattedValue() string {
	if p.Instant != nil {
		return *p.Instant
	}
	return fmt.Sprintf("%s thru %s", deref(p.StartDate), deref(p.EndDate))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
