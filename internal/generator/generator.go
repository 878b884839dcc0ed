package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/beanconv/internal/codemodel"
	"github.com/toyz/beanconv/internal/errors"
	"github.com/toyz/beanconv/internal/javatype"
	"github.com/toyz/beanconv/internal/models"
)

// Annotation types emitted into generated configuration classes
const (
	ConfigurationAnnotation = "org.springframework.context.annotation.Configuration"
	BeanAnnotation          = "org.springframework.context.annotation.Bean"
	ScopeAnnotation         = "org.springframework.context.annotation.Scope"
	DependsOnAnnotation     = "org.springframework.context.annotation.DependsOn"
	PrimaryAnnotation       = "org.springframework.context.annotation.Primary"
	LazyAnnotation          = "org.springframework.context.annotation.Lazy"
	QualifierAnnotation     = "org.springframework.beans.factory.annotation.Qualifier"
)

// GeneratedHeader marks files written by the generator
const GeneratedHeader = "Code generated by beanconv. DO NOT EDIT."

const (
	classJavadoc       = "Generated Java based configuration"
	defaultInitNote    = "initMethod added by default-init-method"
	defaultDestroyNote = "destroyMethod added by bean element default-destroy-method"
	localBeanName      = "bean"
)

// Options controls how configuration classes are rendered
type Options struct {
	ShortenTypes bool     // import bean classes whose simple names do not clash
	Header       []string // line comments above the package clause
}

// Option configures a Generator
type Option func(*Options)

// WithShortenTypes makes bean classes render by simple name where possible
func WithShortenTypes(enabled bool) Option {
	return func(o *Options) {
		o.ShortenTypes = enabled
	}
}

// WithHeader replaces the generated-code header comment
func WithHeader(lines ...string) Option {
	return func(o *Options) {
		o.Header = lines
	}
}

// Generator turns configuration units into Java configuration classes.
// A Generator holds only options; every call builds its own code model, so
// one Generator may be shared between goroutines.
type Generator struct {
	options Options
}

// NewGenerator creates a new code generator instance
func NewGenerator(opts ...Option) *Generator {
	options := Options{Header: []string{GeneratedHeader}}
	for _, opt := range opts {
		opt(&options)
	}
	return &Generator{options: options}
}

// GenerateBean generates a configuration class for a single bean
func (g *Generator) GenerateBean(packageName, className string, bean *models.BeanDefinition) (*models.GeneratedArtifact, error) {
	if bean == nil {
		return nil, errors.NewGenerationError(className, "", "bean definition cannot be nil")
	}
	return g.Generate(packageName, className, &models.ConfigurationUnit{
		Beans: []*models.BeanDefinition{bean},
	})
}

// Generate generates one configuration class with a factory method per
// top-level bean of the unit. Any failure discards the whole class.
func (g *Generator) Generate(packageName, className string, unit *models.ConfigurationUnit) (*models.GeneratedArtifact, error) {
	if unit == nil {
		return nil, errors.NewGenerationError(className, "", "configuration unit cannot be nil")
	}
	if packageName != "" && !codemodel.IsPackageName(packageName) {
		return nil, errors.ConfigurationError("'%s' is not a valid package name", packageName).
			WithSuggestion("Use a dotted sequence of Java identifiers, e.g. com.example.config")
	}

	file := codemodel.NewFile(packageName)
	file.Header = g.options.Header

	class, err := file.Class(className)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "cannot declare configuration class", err).
			WithContext("class", className)
	}
	class.Annotate(file.MustRef(ConfigurationAnnotation))
	class.Javadoc.Add(classJavadoc)

	e := &emission{
		options:   g.options,
		file:      file,
		class:     class,
		unit:      unit,
		className: className,
		methods:   make(map[string]string),
	}

	artifact := &models.GeneratedArtifact{
		PackageName: packageName,
		ClassName:   className,
		FileName:    className + ".java",
	}

	for _, bean := range unit.Beans {
		method, err := e.addFactoryMethod(bean)
		if err != nil {
			return nil, err
		}
		artifact.FactoryMethods = append(artifact.FactoryMethods, method)
	}

	artifact.Content = file.Render()
	artifact.RelativePath = relativePath(packageName, artifact.FileName)
	return artifact, nil
}

func relativePath(packageName, fileName string) string {
	if packageName == "" {
		return fileName
	}
	return strings.ReplaceAll(packageName, ".", "/") + "/" + fileName
}

// emission is the state of one Generate call
type emission struct {
	options   Options
	file      *codemodel.File
	class     *codemodel.Class
	unit      *models.ConfigurationUnit
	className string
	methods   map[string]string // factory method name -> bean it was derived from
}

// beanType resolves a bean class, shortening it only when configured to
func (e *emission) beanType(className string) (*javatype.Type, error) {
	if e.options.ShortenTypes {
		return e.file.Ref(className)
	}
	return e.file.QualifiedRef(className)
}

func (e *emission) addFactoryMethod(bean *models.BeanDefinition) (models.FactoryMethod, error) {
	if bean == nil {
		return models.FactoryMethod{}, errors.NewGenerationError(e.className, "", "bean definition cannot be nil")
	}

	beanName := bean.MethodName()
	if bean.ClassName == "" {
		err := errors.NewGenerationError(e.className, beanName, "bean has no class")
		err.WithBean(beanName)
		return models.FactoryMethod{}, err
	}

	name := codemodel.Identifier(beanName)
	if name == "" || beanName == "" {
		err := errors.NewGenerationError(e.className, "", fmt.Sprintf("cannot derive a method name from class '%s'", bean.ClassName))
		return models.FactoryMethod{}, err
	}
	if previous, taken := e.methods[name]; taken {
		return models.FactoryMethod{}, errors.DuplicateDefinitionError("factory method", name).
			WithBean(beanName).
			WithContext("previous_bean", previous).
			WithSuggestion("Give one of the beans an explicit, unique id")
	}
	e.methods[name] = beanName

	returnType, err := e.beanType(bean.ClassName)
	if err != nil {
		return models.FactoryMethod{}, invalidClass(e.className, beanName, bean.ClassName, err)
	}

	method, err := e.class.Method(returnType, name)
	if err != nil {
		return models.FactoryMethod{}, errors.NewGenerationError(e.className, name, err.Error())
	}

	e.addBeanAnnotation(method, bean)

	if bean.HasScope() {
		method.Annotate(e.file.MustRef(ScopeAnnotation)).Param("value", codemodel.Lit(*bean.Scope))
	}

	if bean.DependsOn != nil {
		values := make([]codemodel.Expr, 0, len(bean.DependsOn))
		for _, dep := range bean.DependsOn {
			values = append(values, codemodel.Lit(dep))
		}
		method.Annotate(e.file.MustRef(DependsOnAnnotation)).ParamArray("value", values...)
	}

	if bean.Description != nil {
		method.Javadoc.Add(*bean.Description)
	}

	if bean.Primary {
		method.Annotate(e.file.MustRef(PrimaryAnnotation))
	}

	if bean.Lazy {
		method.Annotate(e.file.MustRef(LazyAnnotation))
	}

	f := newFactory(method, beanName)

	// Parameters first: the body refers to them by name
	if err := e.addMethodParams(bean, f); err != nil {
		return models.FactoryMethod{}, err
	}

	body := method.Body()
	construct := codemodel.New(returnType)
	if err := e.addParamToBeanConstructor(bean, f, construct); err != nil {
		return models.FactoryMethod{}, err
	}

	if bean.ConstructorOnly() {
		body.Return(construct)
	} else {
		local := body.Decl(returnType, method.LocalName(localBeanName), construct)
		if err := e.setProperties(local, bean.PropertyParams, f); err != nil {
			return models.FactoryMethod{}, err
		}
		body.Return(local)
	}

	result := models.FactoryMethod{
		Name:       name,
		ReturnType: bean.ClassName,
	}
	if bean.ID != nil {
		result.BeanID = *bean.ID
	}
	for _, p := range method.Params() {
		result.Parameters = append(result.Parameters, p.Name)
	}
	return result, nil
}

// addBeanAnnotation attaches @Bean with the id and lifecycle hooks. The id
// goes into "value" unless the bean declares its own hooks, then into "name".
func (e *emission) addBeanAnnotation(method *codemodel.Method, bean *models.BeanDefinition) {
	annotation := method.Annotate(e.file.MustRef(BeanAnnotation))

	if bean.ID != nil {
		if !bean.HasOwnLifecycle() {
			annotation.Param("value", codemodel.Lit(*bean.ID))
		} else {
			annotation.Param("name", codemodel.Lit(*bean.ID))
		}
	}

	if bean.InitMethodName != nil {
		annotation.Param("initMethod", codemodel.Lit(*bean.InitMethodName))
	} else if e.unit.DefaultInitMethod != nil {
		annotation.Param("initMethod", codemodel.Lit(*e.unit.DefaultInitMethod))
		method.Javadoc.Add(defaultInitNote)
	}

	if bean.DestroyMethodName != nil {
		annotation.Param("destroyMethod", codemodel.Lit(*bean.DestroyMethodName))
	} else if e.unit.DefaultDestroyMethod != nil {
		method.Javadoc.Add(defaultDestroyNote)
		annotation.Param("destroyMethod", codemodel.Lit(*e.unit.DefaultDestroyMethod))
	}
}

func invalidClass(className, beanName, beanClass string, cause error) error {
	err := errors.NewGenerationError(className, beanName, fmt.Sprintf("invalid class name '%s'", beanClass))
	err.WithCause(cause).WithBean(beanName)
	return err
}
