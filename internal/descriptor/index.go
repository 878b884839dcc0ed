package descriptor

import (
	"github.com/toyz/beanconv/internal/models"
)

// FallbackClass is the parameter type of references whose class is unknown
const FallbackClass = "java.lang.Object"

// Unresolved is a reference whose class could not be determined
type Unresolved struct {
	Source    string
	Bean      string
	Reference string
}

// Index maps bean names to classes across all descriptors of a run, so a
// reference may point into another descriptor.
type Index struct {
	classes map[string]string
	aliases map[string]string
}

// NewIndex creates an empty bean index
func NewIndex() *Index {
	return &Index{
		classes: make(map[string]string),
		aliases: make(map[string]string),
	}
}

// Add registers the beans and aliases of a document. Later registrations
// of the same name override earlier ones.
func (i *Index) Add(doc *Document) {
	for _, decl := range doc.Declared {
		for _, name := range decl.Names {
			i.classes[name] = decl.ClassName
		}
	}
	for alias, name := range doc.Aliases {
		i.aliases[alias] = name
	}
}

// ClassOf returns the class of a bean name, following aliases
func (i *Index) ClassOf(name string) (string, bool) {
	seen := make(map[string]bool)
	for {
		if className, ok := i.classes[name]; ok {
			return className, className != ""
		}
		target, ok := i.aliases[name]
		if !ok || seen[name] {
			return "", false
		}
		seen[name] = true
		name = target
	}
}

// Resolve fills the class of every reference in the document, including
// references inside nested beans. References that cannot be resolved get
// FallbackClass and are returned.
func (i *Index) Resolve(doc *Document) []Unresolved {
	var unresolved []Unresolved
	for _, bean := range doc.Unit.Beans {
		owner := bean.MethodName()
		i.resolveBean(bean, func(ref string) string {
			if className, ok := i.ClassOf(ref); ok {
				return className
			}
			unresolved = append(unresolved, Unresolved{Source: doc.Source, Bean: owner, Reference: ref})
			return FallbackClass
		})
	}
	return unresolved
}

func (i *Index) resolveBean(bean *models.BeanDefinition, classOf func(string) string) {
	for _, arg := range bean.ConstructorParams {
		switch a := arg.(type) {
		case *models.BeanRefArg:
			if a.ClassName == "" && a.Ref != nil {
				a.ClassName = classOf(*a.Ref)
			}
		case *models.SubBeanArg:
			if a.Bean != nil {
				i.resolveBean(a.Bean, classOf)
			}
		}
	}
	for _, prop := range bean.PropertyParams {
		if p, ok := prop.(*models.PropertyRef); ok && p.ClassName == "" && p.Ref != nil {
			p.ClassName = classOf(*p.Ref)
		}
	}
}
