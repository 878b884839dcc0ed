package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ConfigurationUnit represents one descriptor's worth of bean definitions
// together with the descriptor-level lifecycle defaults
type ConfigurationUnit struct {
	Beans                []*BeanDefinition // top-level beans, in declaration order
	DefaultInitMethod    *string           // default-init-method, nil when not declared
	DefaultDestroyMethod *string           // default-destroy-method, nil when not declared
}

// BeanDefinition represents one component to be instantiated by a factory method
type BeanDefinition struct {
	ID                *string  // explicit bean id, nil when anonymous
	ClassName         string   // fully-qualified class name
	Scope             *string  // scope name, nil when not declared
	DependsOn         []string // beans to initialize first; nil when not declared
	Primary           bool     // preferred candidate for its type
	Lazy              bool     // lazy-init="true"
	Description       *string  // free-text documentation
	InitMethodName    *string  // init-method, nil when not declared
	DestroyMethodName *string  // destroy-method, nil when not declared

	ConstructorParams []ConstructorParam
	PropertyParams    []PropertyParam
}

// NewBean creates a bean definition for the given class
func NewBean(className string) *BeanDefinition {
	return &BeanDefinition{ClassName: className}
}

// MethodName returns the factory method name: the id when present,
// otherwise the simple class name with its first letter lower-cased
func (b *BeanDefinition) MethodName() string {
	if b.ID != nil {
		return *b.ID
	}
	return DeriveName(b.ClassName)
}

// ConstructorOnly reports whether the bean is fully wired through its constructor
func (b *BeanDefinition) ConstructorOnly() bool {
	return len(b.PropertyParams) == 0
}

// HasScope reports whether a non-blank scope was declared
func (b *BeanDefinition) HasScope() bool {
	return !IsBlank(b.Scope)
}

// HasOwnLifecycle reports whether the bean declares its own init or destroy method
func (b *BeanDefinition) HasOwnLifecycle() bool {
	return b.InitMethodName != nil || b.DestroyMethodName != nil
}

// DeriveName converts a qualified class name into a lower-camel method name.
// pro.akvel.test.TestBean -> testBean
func DeriveName(className string) string {
	simple := className[strings.LastIndex(className, ".")+1:]
	r, size := utf8.DecodeRuneInString(simple)
	if size == 0 {
		return ""
	}
	return string(unicode.ToLower(r)) + simple[size:]
}

// IsBlank reports whether an optional string is absent or only whitespace
func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to i
func IntPtr(i int) *int {
	return &i
}
