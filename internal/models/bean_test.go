package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeanDefinition_MethodName(t *testing.T) {
	tests := []struct {
		name     string
		bean     *BeanDefinition
		expected string
	}{
		{name: "id wins", bean: &BeanDefinition{ID: StringPtr("dataSource"), ClassName: "a.Pool"}, expected: "dataSource"},
		{name: "qualified class", bean: NewBean("pro.akvel.test.TestBean"), expected: "testBean"},
		{name: "default package", bean: NewBean("Clock"), expected: "clock"},
		{name: "already lower", bean: NewBean("a.b.lower"), expected: "lower"},
		{name: "non ascii first letter", bean: NewBean("a.Ärger"), expected: "ärger"},
		{name: "empty class", bean: NewBean(""), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.bean.MethodName())
		})
	}
}

func TestBeanDefinition_Predicates(t *testing.T) {
	bean := NewBean("a.B")
	assert.True(t, bean.ConstructorOnly())
	assert.False(t, bean.HasScope())
	assert.False(t, bean.HasOwnLifecycle())

	bean.Scope = StringPtr("  ")
	assert.False(t, bean.HasScope(), "blank scope is not a scope")
	bean.Scope = StringPtr("prototype")
	assert.True(t, bean.HasScope())

	bean.DestroyMethodName = StringPtr("close")
	assert.True(t, bean.HasOwnLifecycle())

	bean.PropertyParams = []PropertyParam{&PropertyValue{Name: "n", Value: "v"}}
	assert.False(t, bean.ConstructorOnly())
}

func TestSortIndex(t *testing.T) {
	assert.Equal(t, 3, (&ConstantArg{ArgPosition: ArgPosition{Index: IntPtr(3)}}).SortIndex())
	assert.Equal(t, math.MaxInt, (&NullArg{}).SortIndex())
}

func TestRefName(t *testing.T) {
	assert.Equal(t, "repo", (&BeanRefArg{Ref: StringPtr("repo"), ClassName: "a.Repository"}).RefName())
	assert.Equal(t, "repository", (&BeanRefArg{ClassName: "a.Repository"}).RefName())
	assert.Equal(t, "mailer", (&PropertyRef{Name: "m", ClassName: "x.Mailer"}).RefName())
	assert.Equal(t, "m", (&PropertyRef{Name: "m"}).PropertyName())
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(StringPtr("")))
	assert.True(t, IsBlank(StringPtr(" \t")))
	assert.False(t, IsBlank(StringPtr("x")))
}
