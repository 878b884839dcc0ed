package models

// GeneratedArtifact represents one generated configuration class
type GeneratedArtifact struct {
	PackageName    string          // Java package, empty for the default package
	ClassName      string          // configuration class name
	FileName       string          // <ClassName>.java
	RelativePath   string          // slash-separated path below the output root
	Content        string          // generated Java source
	FactoryMethods []FactoryMethod // factory methods in this class
}

// FactoryMethod represents one generated @Bean method
type FactoryMethod struct {
	Name       string   // method name
	BeanID     string   // bean id, empty for anonymous beans
	ReturnType string   // declared bean class
	Parameters []string // injected parameter names, in declaration order
}
