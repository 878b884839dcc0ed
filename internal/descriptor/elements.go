package descriptor

import "encoding/xml"

// Namespaces of the attribute shortcuts for properties and constructor arguments
const (
	pNamespace = "http://www.springframework.org/schema/p"
	cNamespace = "http://www.springframework.org/schema/c"
)

type beansElement struct {
	XMLName              xml.Name       `xml:"beans"`
	DefaultInitMethod    *string        `xml:"default-init-method,attr"`
	DefaultDestroyMethod *string        `xml:"default-destroy-method,attr"`
	DefaultLazyInit      string         `xml:"default-lazy-init,attr"`
	Description          string         `xml:"description"`
	Beans                []beanElement  `xml:"bean"`
	Aliases              []aliasElement `xml:"alias"`
	Nested               []nestedBeans  `xml:"beans"`
}

type nestedBeans struct {
	Profile string `xml:"profile,attr"`
}

type aliasElement struct {
	Name  string `xml:"name,attr"`
	Alias string `xml:"alias,attr"`
}

// beanElement keeps every attribute raw: the p and c shortcuts share local
// names such as "name" with regular bean attributes.
type beanElement struct {
	Attrs           []xml.Attr              `xml:",any,attr"`
	Description     *string                 `xml:"description"`
	ConstructorArgs []constructorArgElement `xml:"constructor-arg"`
	Properties      []propertyElement       `xml:"property"`
	Other           []anyElement            `xml:",any"`
}

// attr returns an unqualified attribute
func (b *beanElement) attr(name string) (string, bool) {
	for _, a := range b.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (b *beanElement) attrPtr(name string) *string {
	if v, ok := b.attr(name); ok {
		return &v
	}
	return nil
}

type constructorArgElement struct {
	Index *string `xml:"index,attr"`
	Type  string  `xml:"type,attr"`
	Name  string  `xml:"name,attr"`
	Value *string `xml:"value,attr"`
	Ref   *string `xml:"ref,attr"`
	valueChildren
}

type propertyElement struct {
	Name  string  `xml:"name,attr"`
	Value *string `xml:"value,attr"`
	Ref   *string `xml:"ref,attr"`
	valueChildren
}

// valueChildren are the value forms shared by constructor-arg and property
type valueChildren struct {
	ValueElem *valueElement `xml:"value"`
	RefElem   *refElement   `xml:"ref"`
	Null      *struct{}     `xml:"null"`
	Bean      *beanElement  `xml:"bean"`
	Other     []anyElement  `xml:",any"`
}

type valueElement struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type refElement struct {
	Bean   string `xml:"bean,attr"`
	Local  string `xml:"local,attr"`
	Parent string `xml:"parent,attr"`
}

// target returns the referenced bean name
func (r *refElement) target() string {
	switch {
	case r.Bean != "":
		return r.Bean
	case r.Local != "":
		return r.Local
	default:
		return r.Parent
	}
}

type anyElement struct {
	XMLName xml.Name
}
