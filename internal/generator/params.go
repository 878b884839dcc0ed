package generator

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/beanconv/internal/codemodel"
	"github.com/toyz/beanconv/internal/errors"
	"github.com/toyz/beanconv/internal/models"
)

// factory is the factory method currently being built. Nested beans add
// their parameters and locals to the enclosing factory, never to their own.
type factory struct {
	method   *codemodel.Method
	beanName string
	params   map[string]*codemodel.Param // reference name -> parameter
}

func newFactory(method *codemodel.Method, beanName string) *factory {
	return &factory{
		method:   method,
		beanName: beanName,
		params:   make(map[string]*codemodel.Param),
	}
}

// lookup finds the parameter declared for a reference name
func (f *factory) lookup(refName string) (*codemodel.Param, error) {
	if p, ok := f.params[refName]; ok {
		return p, nil
	}

	declared := make([]string, 0, len(f.params))
	for name := range f.params {
		declared = append(declared, name)
	}
	slices.Sort(declared)

	err := errors.NewReferenceError(refName, declared)
	err.WithBean(f.beanName).WithContext("method", f.method.Name)
	return nil, err
}

// addMethodParams declares one parameter per distinct reference reachable
// from the bean: constructor references, then references inside nested
// beans, then property references. The first declaration of a name wins.
func (e *emission) addMethodParams(bean *models.BeanDefinition, f *factory) error {
	for _, arg := range bean.ConstructorParams {
		if ref, ok := arg.(*models.BeanRefArg); ok {
			if err := e.declareRef(f, ref.Ref, ref.ClassName, ref.RefName()); err != nil {
				return err
			}
		}
	}

	for _, arg := range bean.ConstructorParams {
		if sub, ok := arg.(*models.SubBeanArg); ok {
			if sub.Bean == nil {
				return e.nestedWithoutBean(f)
			}
			if err := e.addMethodParams(sub.Bean, f); err != nil {
				return err
			}
		}
	}

	for _, prop := range bean.PropertyParams {
		if ref, ok := prop.(*models.PropertyRef); ok {
			if err := e.declareRef(f, ref.Ref, ref.ClassName, ref.RefName()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *emission) declareRef(f *factory, ref *string, className, refName string) error {
	if _, exists := f.params[refName]; exists {
		return nil
	}
	if className == "" {
		err := errors.NewGenerationError(e.className, f.method.Name, fmt.Sprintf("reference '%s' has no class", refName))
		err.WithBean(f.beanName)
		return err
	}

	t, err := e.beanType(className)
	if err != nil {
		return invalidClass(e.className, f.beanName, className, err)
	}

	param := f.method.Param(t, f.method.LocalName(codemodel.Identifier(refName)))
	if ref != nil {
		param.Annotate(e.file.MustRef(QualifierAnnotation)).Param("value", codemodel.Lit(*ref))
	}
	f.params[refName] = param
	return nil
}

// addParamToBeanConstructor appends the bean's constructor arguments to
// call, ordered by explicit index with unindexed arguments last
func (e *emission) addParamToBeanConstructor(bean *models.BeanDefinition, f *factory, call *codemodel.Invocation) error {
	args := slices.Clone(bean.ConstructorParams)
	slices.SortStableFunc(args, func(a, b models.ConstructorParam) int {
		return cmp.Compare(a.SortIndex(), b.SortIndex())
	})

	for _, arg := range args {
		switch a := arg.(type) {
		case *models.BeanRefArg:
			param, err := f.lookup(a.RefName())
			if err != nil {
				return err
			}
			call.Arg(param)
		case *models.NullArg:
			call.Arg(codemodel.Null())
		case *models.SubBeanArg:
			if a.Bean == nil {
				return e.nestedWithoutBean(f)
			}
			expr, err := e.nestedBean(a.Bean, f)
			if err != nil {
				return err
			}
			call.Arg(expr)
		case *models.ConstantArg:
			lit, err := constantLiteral(a)
			if err != nil {
				if le, ok := err.(*errors.LiteralError); ok {
					le.WithBean(f.beanName)
				}
				return err
			}
			call.Arg(lit)
		default:
			err := errors.NewGenerationError(e.className, f.method.Name, fmt.Sprintf("unsupported constructor argument %T", arg))
			err.WithBean(f.beanName)
			return err
		}
	}
	return nil
}

// nestedBean builds an inline bean inside the enclosing factory method.
// A constructor-only bean becomes the constructor call itself; any other
// bean is declared as a local, populated, and referenced by that local.
func (e *emission) nestedBean(bean *models.BeanDefinition, f *factory) (codemodel.Expr, error) {
	if bean.ClassName == "" {
		err := errors.NewGenerationError(e.className, f.method.Name, "nested bean has no class")
		err.WithBean(f.beanName)
		return nil, err
	}

	t, err := e.beanType(bean.ClassName)
	if err != nil {
		return nil, invalidClass(e.className, f.beanName, bean.ClassName, err)
	}

	call := codemodel.New(t)
	if err := e.addParamToBeanConstructor(bean, f, call); err != nil {
		return nil, err
	}
	if bean.ConstructorOnly() {
		return call, nil
	}

	local := f.method.Body().Decl(t, f.method.LocalName(localBeanName), call)
	if err := e.setProperties(local, bean.PropertyParams, f); err != nil {
		return nil, err
	}
	return local, nil
}

// setProperties appends one setter call on target per property
func (e *emission) setProperties(target codemodel.Expr, props []models.PropertyParam, f *factory) error {
	body := f.method.Body()

	for _, prop := range props {
		switch p := prop.(type) {
		case *models.PropertyRef:
			param, err := f.lookup(p.RefName())
			if err != nil {
				return err
			}
			body.Invoke(target, SetterName(p.Name)).Arg(param)
		case *models.PropertyValue:
			// values are always passed as strings
			body.Invoke(target, SetterName(p.Name)).Arg(codemodel.Lit(p.Value))
		default:
			err := errors.NewGenerationError(e.className, f.method.Name, fmt.Sprintf("unsupported property %T", prop))
			err.WithBean(f.beanName)
			return err
		}
	}
	return nil
}

func (e *emission) nestedWithoutBean(f *factory) error {
	err := errors.NewGenerationError(e.className, f.method.Name, "nested bean argument carries no bean")
	err.WithBean(f.beanName)
	return err
}

// SetterName returns the setter for a property: set + capitalized name
func SetterName(property string) string {
	r, size := utf8.DecodeRuneInString(property)
	if size == 0 {
		return "set"
	}
	return codemodel.Identifier("set" + string(unicode.ToTitle(r)) + property[size:])
}

// constantLiteral coerces a constant to the literal its declared type asks for
func constantLiteral(arg *models.ConstantArg) (codemodel.Expr, error) {
	switch arg.Type {
	case "java.lang.Integer", "int":
		v, err := strconv.ParseInt(arg.Value, 10, 32)
		if err != nil {
			return nil, errors.NewLiteralError(arg.Value, arg.Type, "int", err)
		}
		return codemodel.IntLit(int32(v)), nil
	case "java.lang.Long", "long":
		v, err := strconv.ParseInt(arg.Value, 10, 64)
		if err != nil {
			return nil, errors.NewLiteralError(arg.Value, arg.Type, "long", err)
		}
		return codemodel.LongLit(v), nil
	default:
		return codemodel.Lit(arg.Value), nil
	}
}
