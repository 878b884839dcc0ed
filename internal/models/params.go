package models

import "math"

// ConstructorParam is one constructor argument of a bean. The set of
// implementations is closed: BeanRefArg, SubBeanArg, ConstantArg and NullArg.
type ConstructorParam interface {
	// SortIndex returns the explicit index, or math.MaxInt when none was given
	SortIndex() int
	constructorParam()
}

// ArgPosition carries the optional explicit index of a constructor argument
type ArgPosition struct {
	Index *int // explicit index attribute, nil when omitted
}

// SortIndex returns the explicit index, or math.MaxInt when none was given
func (p ArgPosition) SortIndex() int {
	if p.Index == nil {
		return math.MaxInt
	}
	return *p.Index
}

func (ArgPosition) constructorParam() {}

// BeanRefArg passes another bean, injected as a factory method parameter
type BeanRefArg struct {
	ArgPosition
	Ref       *string // referenced bean id
	ClassName string  // class of the referenced bean
}

// RefName returns the name of the factory method parameter this reference binds to
func (a *BeanRefArg) RefName() string {
	return refName(a.Ref, a.ClassName)
}

// SubBeanArg constructs an anonymous inner bean in place
type SubBeanArg struct {
	ArgPosition
	Bean *BeanDefinition
}

// ConstantArg passes a literal value
type ConstantArg struct {
	ArgPosition
	Value string // literal text as written in the descriptor
	Type  string // declared type, e.g. java.lang.Integer; empty means string
}

// NullArg passes an explicit null
type NullArg struct {
	ArgPosition
}

// PropertyParam is one setter-style assignment applied after construction.
// Implementations: PropertyRef and PropertyValue.
type PropertyParam interface {
	PropertyName() string
	propertyParam()
}

// PropertyRef assigns another bean through its setter
type PropertyRef struct {
	Name      string  // property name
	Ref       *string // referenced bean id
	ClassName string  // class of the referenced bean
}

// PropertyName returns the property name
func (p *PropertyRef) PropertyName() string { return p.Name }

// RefName returns the name of the factory method parameter this reference binds to
func (p *PropertyRef) RefName() string {
	return refName(p.Ref, p.ClassName)
}

func (*PropertyRef) propertyParam() {}

// PropertyValue assigns a literal value through its setter
type PropertyValue struct {
	Name  string
	Value string
}

// PropertyName returns the property name
func (p *PropertyValue) PropertyName() string { return p.Name }

func (*PropertyValue) propertyParam() {}

func refName(ref *string, className string) string {
	if ref != nil {
		return *ref
	}
	return DeriveName(className)
}
