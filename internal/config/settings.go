package config

import (
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/spvbuild/internal/invocation"
)

// Settings is the effective option set of one run.
type Settings struct {
	Source            string   `yaml:"source" json:"source"`
	Destination       string   `yaml:"destination,omitempty" json:"destination,omitempty"`
	Target            string   `yaml:"target" json:"target"`
	Toolchain         string   `yaml:"toolchain" json:"toolchain"`
	Extensions        []string `yaml:"extensions" json:"extensions"`
	Capabilities      []string `yaml:"capabilities" json:"capabilities"`
	UnknownCapability string   `yaml:"unknown_capability" json:"unknown_capability"`
	Debug             bool     `yaml:"debug" json:"debug"`
	Cargo             string   `yaml:"cargo" json:"cargo"`
	CargoHome         string   `yaml:"cargo_home,omitempty" json:"cargo_home,omitempty"`
	CodegenBackend    string   `yaml:"codegen_backend,omitempty" json:"codegen_backend,omitempty"`
	History           string   `yaml:"history,omitempty" json:"history,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Source:            invocation.DefaultSource,
		Target:            invocation.DefaultTarget,
		Toolchain:         invocation.ToolchainVersion,
		Extensions:        []string{},
		Capabilities:      []string{},
		UnknownCapability: invocation.CapabilityDrop.String(),
		Cargo:             "cargo",
	}
}

// Merge returns s with every field set in f replacing the current value.
// Lists are replaced, not appended. A nil f returns s unchanged.
func (s Settings) Merge(f *File) Settings {
	if f == nil {
		return s
	}
	if f.Source != "" {
		s.Source = f.Source
	}
	if f.Destination != "" {
		s.Destination = f.Destination
	}
	if f.Target != "" {
		s.Target = f.Target
	}
	if f.Toolchain != "" {
		s.Toolchain = f.Toolchain
	}
	if f.Extensions != nil {
		s.Extensions = slices.Clone(f.Extensions)
	}
	if f.Capabilities != nil {
		s.Capabilities = slices.Clone(f.Capabilities)
	}
	if f.UnknownCapability != "" {
		s.UnknownCapability = f.UnknownCapability
	}
	if f.Debug != nil {
		s.Debug = *f.Debug
	}
	if f.Cargo != "" {
		s.Cargo = f.Cargo
	}
	if f.CargoHome != "" {
		s.CargoHome = f.CargoHome
	}
	if f.CodegenBackend != "" {
		s.CodegenBackend = f.CodegenBackend
	}
	if f.History != "" {
		s.History = f.History
	}
	return s
}

// Invocation returns the build request part of s.
func (s Settings) Invocation() invocation.Config {
	return invocation.Config{
		Source:       s.Source,
		Destination:  s.Destination,
		Target:       s.Target,
		Extensions:   slices.Clone(s.Extensions),
		Capabilities: slices.Clone(s.Capabilities),
		Debug:        s.Debug,
	}
}

// Policy parses UnknownCapability.
func (s Settings) Policy() (invocation.CapabilityPolicy, error) {
	return invocation.ParseCapabilityPolicy(s.UnknownCapability)
}

// YAML renders s as a config document that Parse accepts.
func (s Settings) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
