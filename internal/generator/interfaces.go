package generator

import "github.com/toyz/beanconv/internal/models"

// CodeGenerator defines the interface for generating configuration classes from bean definitions
type CodeGenerator interface {
	Generate(packageName, className string, unit *models.ConfigurationUnit) (*models.GeneratedArtifact, error)
	GenerateBean(packageName, className string, bean *models.BeanDefinition) (*models.GeneratedArtifact, error)
}

var _ CodeGenerator = (*Generator)(nil)
