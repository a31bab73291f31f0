// Package xmlnode wraps an etree DOM with the small set of lookups the
// filing decoders need: direct children by local name, leading text and
// unprefixed attributes.
package xmlnode

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// ErrMalformedXML is wrapped by every error Parse returns.
var ErrMalformedXML = errors.New("malformed xml")

// Parse checks that text is a well-formed XML document and returns its
// root element.
func Parse(text string) (*etree.Element, error) {
	if err := checkWellFormed(text); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedXML, err)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = passThrough
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedXML, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrMalformedXML)
	}
	return root, nil
}

// Input is already decoded text, whatever the prolog claims.
func passThrough(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

var (
	errUnboundPrefix = errors.New("unbound namespace prefix")
	errDuplicateAttr = errors.New("duplicate attribute")
	errLateDecl      = errors.New("xml declaration not at start of document")
)

// checkWellFormed runs the strict encoding/xml tokenizer over the whole
// input. etree reads raw tokens and would accept mismatched end tags.
// Raw tokens are used so prefixes can be checked against the xmlns
// declarations in scope.
func checkWellFormed(text string) error {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true
	dec.CharsetReader = passThrough

	var (
		open     []xml.Name
		ns       nsStack
		seenRoot bool
		seenAny  bool
	)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(open) == 0 && seenRoot {
				return fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			seenRoot = true
			if err := ns.push(t); err != nil {
				return fmt.Errorf("element %s: %w", qname(t.Name), err)
			}
			open = append(open, t.Name)
		case xml.EndElement:
			if len(open) == 0 {
				return fmt.Errorf("unexpected end element </%s>", qname(t.Name))
			}
			if start := open[len(open)-1]; start != t.Name {
				return fmt.Errorf("element <%s> closed by </%s>", qname(start), qname(t.Name))
			}
			open = open[:len(open)-1]
			ns.pop()
		case xml.CharData:
			if len(open) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return errors.New("unexpected character data outside root element")
				}
				if strings.Trim(string(t), "\uFEFF") == "" {
					// a byte order mark may precede the declaration
					continue
				}
			}
		case xml.ProcInst:
			if strings.EqualFold(t.Target, "xml") && seenAny {
				return errLateDecl
			}
		}
		seenAny = true
	}
	if len(open) > 0 {
		return fmt.Errorf("element <%s> not closed: %w", qname(open[len(open)-1]), io.ErrUnexpectedEOF)
	}
	if !seenRoot {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// nsStack holds the prefixes declared by each open element. Raw names
// carry the prefix in Space.
type nsStack struct {
	scopes []map[string]bool
}

func (s *nsStack) push(start xml.StartElement) error {
	var scope map[string]bool
	seen := make(map[xml.Name]bool, len(start.Attr))
	for _, a := range start.Attr {
		if seen[a.Name] {
			return fmt.Errorf("%w %s", errDuplicateAttr, qname(a.Name))
		}
		seen[a.Name] = true
		if a.Name.Space == "xmlns" {
			if a.Value == "" {
				return fmt.Errorf("empty namespace for prefix %s", a.Name.Local)
			}
			if scope == nil {
				scope = make(map[string]bool, 1)
			}
			scope[a.Name.Local] = true
		}
	}
	s.scopes = append(s.scopes, scope)

	if !s.bound(start.Name.Space) {
		return fmt.Errorf("%w %s", errUnboundPrefix, start.Name.Space)
	}
	for _, a := range start.Attr {
		if a.Name.Space != "xmlns" && !s.bound(a.Name.Space) {
			return fmt.Errorf("attribute %s: %w %s", qname(a.Name), errUnboundPrefix, a.Name.Space)
		}
	}
	return nil
}

func (s *nsStack) pop() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *nsStack) bound(prefix string) bool {
	if prefix == "" || prefix == "xml" {
		return true
	}
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if s.scopes[i][prefix] {
			return true
		}
	}
	return false
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// FirstChild returns the first direct child element named tag, ignoring
// any namespace prefix, or nil.
func FirstChild(e *etree.Element, tag string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Children returns every direct child element named tag, in document order.
func Children(e *etree.Element, tag string) []*etree.Element {
	if e == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the character data that opens e, up to its first child
// element or comment. ok is false when e does not start with text.
func Text(e *etree.Element) (text string, ok bool) {
	if e == nil {
		return "", false
	}
	var sb strings.Builder
	for _, tok := range e.Child {
		cd, isText := tok.(*etree.CharData)
		if !isText {
			break
		}
		sb.WriteString(cd.Data)
		ok = true
	}
	return sb.String(), ok
}

// ChildText is Text(FirstChild(e, tag)).
func ChildText(e *etree.Element, tag string) (string, bool) {
	return Text(FirstChild(e, tag))
}

// Attr returns the value of the unprefixed attribute name.
func Attr(e *etree.Element, name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attr {
		if a.Space == "" && a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// RootNamespace returns the URI bound to prefix by an xmlns declaration on
// root, or "" when root does not declare it.
func RootNamespace(root *etree.Element, prefix string) string {
	if root == nil {
		return ""
	}
	for _, a := range root.Attr {
		if a.Space == "xmlns" && a.Key == prefix {
			return a.Value
		}
	}
	return ""
}

// HasName reports whether e has local name tag in namespace space. An
// element whose prefix is not bound to anything is in the "" namespace.
func HasName(e *etree.Element, space, tag string) bool {
	return e != nil && e.Tag == tag && e.NamespaceURI() == space
}
