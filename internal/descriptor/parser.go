// Package descriptor reads XML bean descriptors into configuration units.
package descriptor

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/toyz/beanconv/internal/errors"
	"github.com/toyz/beanconv/internal/models"
)

// Document is one parsed descriptor
type Document struct {
	Source      string
	Description string
	Unit        *models.ConfigurationUnit
	Skipped     []Skipped
	// Declared lists every top-level bean, converted or not, for reference resolution
	Declared []Declaration
	Aliases  map[string]string // alias -> bean name
}

// Skipped is a bean that has no factory method equivalent
type Skipped struct {
	Bean   string
	Reason string
}

// Declaration is a top-level bean known by one or more names
type Declaration struct {
	Names     []string
	ClassName string // empty when the produced type is unknown
}

// nameDelimiters separate values in name and depends-on attributes
const nameDelimiters = ",; "

// unsupported marks a bean that cannot be expressed as a factory method
type unsupported struct {
	reason string
}

func (u *unsupported) Error() string { return u.reason }

func skip(format string, args ...interface{}) error {
	return &unsupported{reason: fmt.Sprintf(format, args...)}
}

// Parse reads a descriptor. Malformed XML fails the document; beans that
// cannot be expressed are reported in Skipped and left out of the unit.
func Parse(r io.Reader, source string) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var root beansElement
	if err := decoder.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, errors.NewDescriptorError(source, "descriptor is empty")
		}
		return nil, errors.WrapDescriptorError(source, err).
			WithElement("beans")
	}

	doc := &Document{
		Source:      source,
		Description: strings.TrimSpace(root.Description),
		Unit: &models.ConfigurationUnit{
			Beans:                make([]*models.BeanDefinition, 0, len(root.Beans)),
			DefaultInitMethod:    root.DefaultInitMethod,
			DefaultDestroyMethod: root.DefaultDestroyMethod,
		},
		Aliases: make(map[string]string),
	}

	p := &parser{source: source, defaultLazy: root.DefaultLazyInit == "true"}

	for i := range root.Beans {
		element := &root.Beans[i]
		id, aliases := beanNames(element)

		label := id
		if label == "" {
			label, _ = element.attr("class")
		}

		doc.Declared = append(doc.Declared, Declaration{
			Names:     append(nonEmpty(id), aliases...),
			ClassName: declaredClass(element),
		})

		bean, err := p.bean(element)
		if err != nil {
			if u, ok := err.(*unsupported); ok {
				doc.Skipped = append(doc.Skipped, Skipped{Bean: label, Reason: u.reason})
				continue
			}
			return nil, err
		}
		doc.Unit.Beans = append(doc.Unit.Beans, bean)
	}

	for _, alias := range root.Aliases {
		if alias.Name == "" || alias.Alias == "" {
			return nil, errors.NewDescriptorError(source, "alias requires name and alias attributes").
				WithElement("alias")
		}
		doc.Aliases[alias.Alias] = alias.Name
	}

	for _, nested := range root.Nested {
		doc.Skipped = append(doc.Skipped, Skipped{
			Bean:   "beans profile=" + strconv.Quote(nested.Profile),
			Reason: "nested <beans> elements are not supported",
		})
	}

	return doc, nil
}

type parser struct {
	source      string
	defaultLazy bool
}

func (p *parser) bean(element *beanElement) (*models.BeanDefinition, error) {
	id, _ := beanNames(element)
	className, _ := element.attr("class")

	if v, _ := element.attr("abstract"); v == "true" {
		return nil, skip("abstract bean")
	}
	if v, ok := element.attr("factory-method"); ok {
		return nil, skip("factory method %q", v)
	}
	if v, ok := element.attr("factory-bean"); ok {
		return nil, skip("factory bean %q", v)
	}
	if v, ok := element.attr("parent"); ok {
		return nil, skip("inherits from parent bean %q", v)
	}
	if className == "" {
		return nil, skip("no class attribute")
	}
	for _, other := range element.Other {
		switch other.XMLName.Local {
		case "qualifier", "meta":
		default:
			return nil, skip("unsupported <%s> element", other.XMLName.Local)
		}
	}

	bean := &models.BeanDefinition{
		ClassName:         className,
		Scope:             element.attrPtr("scope"),
		InitMethodName:    element.attrPtr("init-method"),
		DestroyMethodName: element.attrPtr("destroy-method"),
	}
	if id != "" {
		bean.ID = &id
	}

	if v, ok := element.attr("depends-on"); ok {
		if deps := splitNames(v); len(deps) > 0 {
			bean.DependsOn = deps
		}
	}
	if v, _ := element.attr("primary"); v == "true" {
		bean.Primary = true
	}
	switch v, _ := element.attr("lazy-init"); v {
	case "true":
		bean.Lazy = true
	case "", "default":
		bean.Lazy = p.defaultLazy
	}
	if element.Description != nil {
		description := strings.TrimSpace(*element.Description)
		bean.Description = &description
	}

	for i := range element.ConstructorArgs {
		arg, err := p.constructorArg(&element.ConstructorArgs[i], beanLabel(bean))
		if err != nil {
			return nil, err
		}
		bean.ConstructorParams = append(bean.ConstructorParams, arg)
	}

	for i := range element.Properties {
		prop, err := p.property(&element.Properties[i], beanLabel(bean))
		if err != nil {
			return nil, err
		}
		bean.PropertyParams = append(bean.PropertyParams, prop)
	}

	if err := p.shortcuts(element, bean); err != nil {
		return nil, err
	}

	return bean, nil
}

func (p *parser) constructorArg(arg *constructorArgElement, bean string) (models.ConstructorParam, error) {
	position := models.ArgPosition{}
	if arg.Index != nil {
		index, err := strconv.Atoi(strings.TrimSpace(*arg.Index))
		if err != nil || index < 0 {
			return nil, errors.NewDescriptorError(p.source, fmt.Sprintf("invalid constructor-arg index %q", *arg.Index)).
				WithElement("constructor-arg").
				WithBean(bean)
		}
		position.Index = &index
	}

	if err := unsupportedChildren(arg.Other); err != nil {
		return nil, err
	}

	switch {
	case arg.Ref != nil:
		return &models.BeanRefArg{ArgPosition: position, Ref: arg.Ref}, nil
	case arg.Value != nil:
		return &models.ConstantArg{ArgPosition: position, Value: *arg.Value, Type: arg.Type}, nil
	case arg.RefElem != nil:
		target := arg.RefElem.target()
		if target == "" {
			return nil, p.emptyRef("constructor-arg", bean)
		}
		return &models.BeanRefArg{ArgPosition: position, Ref: &target}, nil
	case arg.ValueElem != nil:
		typeName := arg.ValueElem.Type
		if typeName == "" {
			typeName = arg.Type
		}
		return &models.ConstantArg{ArgPosition: position, Value: arg.ValueElem.Text, Type: typeName}, nil
	case arg.Null != nil:
		return &models.NullArg{ArgPosition: position}, nil
	case arg.Bean != nil:
		nested, err := p.bean(arg.Bean)
		if err != nil {
			if u, ok := err.(*unsupported); ok {
				return nil, skip("nested bean: %s", u.reason)
			}
			return nil, err
		}
		return &models.SubBeanArg{ArgPosition: position, Bean: nested}, nil
	default:
		return nil, errors.NewDescriptorError(p.source, "constructor-arg has no value").
			WithElement("constructor-arg").
			WithBean(bean)
	}
}

func (p *parser) property(prop *propertyElement, bean string) (models.PropertyParam, error) {
	if prop.Name == "" {
		return nil, errors.NewDescriptorError(p.source, "property requires a name attribute").
			WithElement("property").
			WithBean(bean)
	}
	if err := unsupportedChildren(prop.Other); err != nil {
		return nil, err
	}

	switch {
	case prop.Ref != nil:
		return &models.PropertyRef{Name: prop.Name, Ref: prop.Ref}, nil
	case prop.Value != nil:
		return &models.PropertyValue{Name: prop.Name, Value: *prop.Value}, nil
	case prop.RefElem != nil:
		target := prop.RefElem.target()
		if target == "" {
			return nil, p.emptyRef("property", bean)
		}
		return &models.PropertyRef{Name: prop.Name, Ref: &target}, nil
	case prop.ValueElem != nil:
		return &models.PropertyValue{Name: prop.Name, Value: prop.ValueElem.Text}, nil
	case prop.Null != nil:
		return nil, skip("null value for property %q", prop.Name)
	case prop.Bean != nil:
		return nil, skip("inner bean for property %q", prop.Name)
	default:
		return nil, errors.NewDescriptorError(p.source, fmt.Sprintf("property %q has no value", prop.Name)).
			WithElement("property").
			WithBean(bean)
	}
}

// shortcuts converts p:name, p:name-ref, c:_N and c:_N-ref attributes
func (p *parser) shortcuts(element *beanElement, bean *models.BeanDefinition) error {
	for _, a := range element.Attrs {
		switch a.Name.Space {
		case pNamespace, "p":
			if name, ok := strings.CutSuffix(a.Name.Local, "-ref"); ok {
				ref := a.Value
				bean.PropertyParams = append(bean.PropertyParams, &models.PropertyRef{Name: name, Ref: &ref})
				continue
			}
			bean.PropertyParams = append(bean.PropertyParams, &models.PropertyValue{Name: a.Name.Local, Value: a.Value})
		case cNamespace, "c":
			local, isRef := strings.CutSuffix(a.Name.Local, "-ref")
			digits, ok := strings.CutPrefix(local, "_")
			index, err := strconv.Atoi(digits)
			if !ok || err != nil || index < 0 {
				return skip("named constructor argument c:%s", a.Name.Local)
			}
			position := models.ArgPosition{Index: &index}
			if isRef {
				ref := a.Value
				bean.ConstructorParams = append(bean.ConstructorParams, &models.BeanRefArg{ArgPosition: position, Ref: &ref})
				continue
			}
			bean.ConstructorParams = append(bean.ConstructorParams, &models.ConstantArg{ArgPosition: position, Value: a.Value})
		}
	}
	return nil
}

func (p *parser) emptyRef(element, bean string) error {
	return errors.NewDescriptorError(p.source, "<ref> requires a bean, local or parent attribute").
		WithElement(element).
		WithBean(bean)
}

func unsupportedChildren(children []anyElement) error {
	for _, child := range children {
		if child.XMLName.Local == "description" {
			continue
		}
		return skip("unsupported <%s> value", child.XMLName.Local)
	}
	return nil
}

// beanNames returns the bean id and its aliases. Without an id, the first
// entry of the name attribute becomes the id.
func beanNames(element *beanElement) (string, []string) {
	id, _ := element.attr("id")
	var names []string
	if v, ok := element.attr("name"); ok {
		names = splitNames(v)
	}
	if id == "" && len(names) > 0 {
		return names[0], names[1:]
	}
	return id, names
}

// declaredClass returns the class a bean produces, empty when it depends on
// factory methods or a parent definition
func declaredClass(element *beanElement) string {
	if _, ok := element.attr("factory-method"); ok {
		return ""
	}
	className, _ := element.attr("class")
	return className
}

func beanLabel(bean *models.BeanDefinition) string {
	if bean.ID != nil {
		return *bean.ID
	}
	return bean.ClassName
}

func splitNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(nameDelimiters, r)
	})
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
