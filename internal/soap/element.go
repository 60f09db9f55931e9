package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Namespace URIs shared by every SuiteTalk envelope.
const (
	EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	XSINS      = "http://www.w3.org/2001/XMLSchema-instance"
	XSDNS      = "http://www.w3.org/2001/XMLSchema"
)

// New returns an element with a prefix-qualified tag ("platformMsgs:get")
// and the given children.
func New(tag string, children ...*etree.Element) *etree.Element {
	el := etree.NewElement(tag)
	for _, c := range children {
		el.AddChild(c)
	}
	return el
}

// Text returns a leaf element holding text.
func Text(tag, text string) *etree.Element {
	el := etree.NewElement(tag)
	el.SetText(text)
	return el
}

// Attr returns the value of an attribute written without a prefix.
func Attr(el *etree.Element, key string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// XSIType returns the xsi:type attribute with any prefix stripped.
func XSIType(el *etree.Element) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == "type" && a.Space != "" && (a.Space == "xsi" || a.NamespaceURI() == XSINS) {
			if _, local, found := strings.Cut(a.Value, ":"); found {
				return local
			}
			return a.Value
		}
	}
	return ""
}

// Child returns the first direct child with the given local name.
func Child(el *etree.Element, name string) *etree.Element {
	if el == nil {
		return nil
	}
	return el.SelectElement(name)
}

// Children returns every direct child with the given local name.
func Children(el *etree.Element, name string) []*etree.Element {
	if el == nil {
		return nil
	}
	return el.SelectElements(name)
}

// ChildText returns the text of the first child with the given name.
func ChildText(el *etree.Element, name string) string {
	if c := Child(el, name); c != nil {
		return c.Text()
	}
	return ""
}

// Find returns the first descendant with the given local name.
func Find(el *etree.Element, name string) *etree.Element {
	if el == nil {
		return nil
	}
	return el.FindElement(".//" + name)
}

// Marshal encodes root as a standalone XML document. Empty elements keep an
// explicit end tag.
func Marshal(root *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(root)

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return data, nil
}

// Parse decodes an XML document and returns its root element.
func Parse(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("decoding xml: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("decoding xml: empty document")
	}
	return root, nil
}
