package config

// Manifest represents the structure of the mason.yaml manifest file.
type Manifest struct {
	Version string             `yaml:"version"`
	Units   map[string]UnitDTO `yaml:"units"`
}

// UnitDTO represents a unit definition in the manifest.
type UnitDTO struct {
	SourceRoot string   `yaml:"sourceRoot"`
	Artifacts  []string `yaml:"artifacts"`
	DependsOn  []string `yaml:"dependsOn"`
	Cmd        []string `yaml:"cmd"`
}
