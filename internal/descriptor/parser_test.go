package descriptor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/beanconv/internal/errors"
	"github.com/toyz/beanconv/internal/models"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<beans xmlns="http://www.springframework.org/schema/beans"
       xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
       xmlns:p="http://www.springframework.org/schema/p"
       xmlns:c="http://www.springframework.org/schema/c"`

func parse(t *testing.T, body string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(body), "beans.xml")
	require.NoError(t, err)
	return doc
}

func TestParse_BeanAttributes(t *testing.T) {
	doc := parse(t, header+` default-init-method="init" default-destroy-method="close">
    <description>Test context</description>
    <bean id="testBean" class="pro.akvel.test.TestBean" scope="prototype"
          depends-on="a, b;c" primary="true" lazy-init="true"
          init-method="start" destroy-method="stop">
        <description>
            The bean under test
        </description>
    </bean>
</beans>`)

	assert.Equal(t, "Test context", doc.Description)
	assert.Equal(t, "init", *doc.Unit.DefaultInitMethod)
	assert.Equal(t, "close", *doc.Unit.DefaultDestroyMethod)
	require.Len(t, doc.Unit.Beans, 1)

	bean := doc.Unit.Beans[0]
	assert.Equal(t, "testBean", *bean.ID)
	assert.Equal(t, "pro.akvel.test.TestBean", bean.ClassName)
	assert.Equal(t, "prototype", *bean.Scope)
	assert.Equal(t, []string{"a", "b", "c"}, bean.DependsOn)
	assert.True(t, bean.Primary)
	assert.True(t, bean.Lazy)
	assert.Equal(t, "start", *bean.InitMethodName)
	assert.Equal(t, "stop", *bean.DestroyMethodName)
	assert.Equal(t, "The bean under test", *bean.Description)
	assert.Empty(t, doc.Skipped)
}

func TestParse_Defaults(t *testing.T) {
	doc := parse(t, header+`>
    <bean class="a.B"/>
</beans>`)

	assert.Nil(t, doc.Unit.DefaultInitMethod)
	assert.Nil(t, doc.Unit.DefaultDestroyMethod)

	bean := doc.Unit.Beans[0]
	assert.Nil(t, bean.ID)
	assert.Nil(t, bean.Scope)
	assert.Nil(t, bean.DependsOn)
	assert.Nil(t, bean.Description)
	assert.False(t, bean.Primary)
	assert.False(t, bean.Lazy)
	assert.Nil(t, bean.InitMethodName)
	assert.Nil(t, bean.DestroyMethodName)
}

func TestParse_DefaultLazyInit(t *testing.T) {
	doc := parse(t, header+` default-lazy-init="true">
    <bean id="a" class="a.A"/>
    <bean id="b" class="a.B" lazy-init="false"/>
</beans>`)

	assert.True(t, doc.Unit.Beans[0].Lazy)
	assert.False(t, doc.Unit.Beans[1].Lazy)
}

func TestParse_Names(t *testing.T) {
	doc := parse(t, header+`>
    <bean name="primaryName,second third" class="a.A"/>
    <bean id="b" name="bee" class="a.B"/>
    <alias name="b" alias="buzz"/>
</beans>`)

	assert.Equal(t, "primaryName", *doc.Unit.Beans[0].ID)
	assert.Equal(t, "b", *doc.Unit.Beans[1].ID)
	assert.Equal(t, []Declaration{
		{Names: []string{"primaryName", "second", "third"}, ClassName: "a.A"},
		{Names: []string{"b", "bee"}, ClassName: "a.B"},
	}, doc.Declared)
	assert.Equal(t, map[string]string{"buzz": "b"}, doc.Aliases)
}

func TestParse_ConstructorArgs(t *testing.T) {
	doc := parse(t, header+`>
    <bean id="b" class="a.B">
        <constructor-arg index="1" ref="dep"/>
        <constructor-arg value="42" type="java.lang.Integer"/>
        <constructor-arg><value type="java.lang.Long">7</value></constructor-arg>
        <constructor-arg type="int"><value>5</value></constructor-arg>
        <constructor-arg><ref bean="other"/></constructor-arg>
        <constructor-arg><ref local="local"/></constructor-arg>
        <constructor-arg><null/></constructor-arg>
        <constructor-arg index="0">
            <bean class="a.Inner">
                <property name="v" value="1"/>
            </bean>
        </constructor-arg>
    </bean>
</beans>`)

	args := doc.Unit.Beans[0].ConstructorParams
	require.Len(t, args, 8)

	refArg := args[0].(*models.BeanRefArg)
	assert.Equal(t, "dep", *refArg.Ref)
	assert.Equal(t, 1, refArg.SortIndex())
	assert.Empty(t, refArg.ClassName)

	assert.Equal(t, &models.ConstantArg{Value: "42", Type: "java.lang.Integer"}, args[1])
	assert.Equal(t, &models.ConstantArg{Value: "7", Type: "java.lang.Long"}, args[2])
	assert.Equal(t, &models.ConstantArg{Value: "5", Type: "int"}, args[3])
	assert.Equal(t, "other", *args[4].(*models.BeanRefArg).Ref)
	assert.Equal(t, "local", *args[5].(*models.BeanRefArg).Ref)
	assert.IsType(t, &models.NullArg{}, args[6])

	sub := args[7].(*models.SubBeanArg)
	assert.Equal(t, 0, sub.SortIndex())
	assert.Equal(t, "a.Inner", sub.Bean.ClassName)
	assert.Equal(t, []models.PropertyParam{&models.PropertyValue{Name: "v", Value: "1"}}, sub.Bean.PropertyParams)
}

func TestParse_Properties(t *testing.T) {
	doc := parse(t, header+`>
    <bean id="b" class="a.B">
        <property name="name" value="x"/>
        <property name="dep" ref="d"/>
        <property name="text"><value>  spaced  </value></property>
        <property name="other"><ref bean="o"/></property>
    </bean>
</beans>`)

	props := doc.Unit.Beans[0].PropertyParams
	require.Len(t, props, 4)
	assert.Equal(t, &models.PropertyValue{Name: "name", Value: "x"}, props[0])
	assert.Equal(t, "d", *props[1].(*models.PropertyRef).Ref)
	assert.Equal(t, &models.PropertyValue{Name: "text", Value: "  spaced  "}, props[2])
	assert.Equal(t, "o", *props[3].(*models.PropertyRef).Ref)
}

func TestParse_NamespaceShortcuts(t *testing.T) {
	doc := parse(t, header+`>
    <bean id="b" class="a.B" p:name="x" p:dep-ref="d" c:_0="zero" c:_1-ref="one"/>
</beans>`)

	bean := doc.Unit.Beans[0]
	assert.Equal(t, "b", *bean.ID)

	require.Len(t, bean.PropertyParams, 2)
	assert.Equal(t, &models.PropertyValue{Name: "name", Value: "x"}, bean.PropertyParams[0])
	assert.Equal(t, "dep", bean.PropertyParams[1].PropertyName())
	assert.Equal(t, "d", *bean.PropertyParams[1].(*models.PropertyRef).Ref)

	require.Len(t, bean.ConstructorParams, 2)
	assert.Equal(t, 0, bean.ConstructorParams[0].SortIndex())
	assert.Equal(t, "zero", bean.ConstructorParams[0].(*models.ConstantArg).Value)
	assert.Equal(t, "one", *bean.ConstructorParams[1].(*models.BeanRefArg).Ref)
}

func TestParse_SkippedBeans(t *testing.T) {
	doc := parse(t, header+`>
    <bean id="base" class="a.Base" abstract="true"/>
    <bean id="child" parent="base"/>
    <bean id="made" class="a.Factory" factory-method="create"/>
    <bean id="viaFactory" factory-bean="made" factory-method="build"/>
    <bean id="noClass"/>
    <bean id="withList" class="a.B">
        <property name="items"><list><value>1</value></list></property>
    </bean>
    <bean id="nullProp" class="a.B">
        <property name="x"><null/></property>
    </bean>
    <bean id="innerProp" class="a.B">
        <property name="x"><bean class="a.C"/></property>
    </bean>
    <bean id="lookup" class="a.B">
        <lookup-method name="create" bean="x"/>
    </bean>
    <bean id="named" class="a.B" c:name="x"/>
    <bean id="nestedAbstract" class="a.B">
        <constructor-arg><bean class="a.C" abstract="true"/></constructor-arg>
    </bean>
    <bean id="kept" class="a.Kept">
        <qualifier value="main"/>
    </bean>
    <beans profile="dev"/>
</beans>`)

	require.Len(t, doc.Unit.Beans, 1)
	assert.Equal(t, "kept", *doc.Unit.Beans[0].ID)

	skipped := make(map[string]string)
	for _, s := range doc.Skipped {
		skipped[s.Bean] = s.Reason
	}
	assert.Len(t, skipped, 12)
	assert.Equal(t, "abstract bean", skipped["base"])
	assert.Contains(t, skipped["child"], "parent")
	assert.Contains(t, skipped["made"], "factory method")
	assert.Contains(t, skipped["viaFactory"], "factory")
	assert.Equal(t, "no class attribute", skipped["noClass"])
	assert.Contains(t, skipped["withList"], "<list>")
	assert.Contains(t, skipped["nullProp"], "null")
	assert.Contains(t, skipped["innerProp"], "inner bean")
	assert.Contains(t, skipped["lookup"], "lookup-method")
	assert.Contains(t, skipped["named"], "c:name")
	assert.Contains(t, skipped["nestedAbstract"], "nested bean")
	assert.Contains(t, skipped[`beans profile="dev"`], "nested <beans>")

	// skipped beans stay resolvable by reference
	assert.Contains(t, doc.Declared, Declaration{Names: []string{"made"}, ClassName: ""})
	assert.Contains(t, doc.Declared, Declaration{Names: []string{"base"}, ClassName: "a.Base"})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", "<beans><bean class='a.B'></beans>"},
		{"wrong root", "<configuration/>"},
		{"bad index", `<beans><bean class="a.B"><constructor-arg index="x" value="1"/></bean></beans>`},
		{"negative index", `<beans><bean class="a.B"><constructor-arg index="-1" value="1"/></bean></beans>`},
		{"empty constructor-arg", `<beans><bean class="a.B"><constructor-arg/></bean></beans>`},
		{"property without name", `<beans><bean class="a.B"><property value="1"/></bean></beans>`},
		{"property without value", `<beans><bean class="a.B"><property name="x"/></bean></beans>`},
		{"empty ref", `<beans><bean class="a.B"><constructor-arg><ref/></constructor-arg></bean></beans>`},
		{"incomplete alias", `<beans><alias name="a"/></beans>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.body), "broken.xml")
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.HasCode(err, errors.DescriptorErrorCode), err.Error())

			var descErr *errors.DescriptorError
			require.ErrorAs(t, err, &descErr)
			assert.Equal(t, "broken.xml", descErr.Location().File)
		})
	}
}

func TestParse_Latin1(t *testing.T) {
	body := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<beans><bean id=\"b\" class=\"a.B\"><property name=\"city\" value=\"M\xfcnchen\"/></bean></beans>"

	doc := parse(t, body)
	assert.Equal(t, &models.PropertyValue{Name: "city", Value: "München"}, doc.Unit.Beans[0].PropertyParams[0])
}

func TestParse_DTDDescriptor(t *testing.T) {
	doc := parse(t, `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE beans PUBLIC "-//SPRING//DTD BEAN 2.0//EN" "https://www.springframework.org/dtd/spring-beans-2.0.dtd">
<beans>
    <import resource="other.xml"/>
    <bean id="b" class="a.B"/>
</beans>`)

	require.Len(t, doc.Unit.Beans, 1)
	assert.Empty(t, doc.Skipped)
}
