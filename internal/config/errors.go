package config

import (
	"fmt"

	"github.com/andyballingall/schemaform/internal/validator"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file %s not found", e.Path)
}

type InvalidYAMLError struct {
	Path    string
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid yaml document: %v", e.Path, e.Wrapped)
}

type InvalidDraftError struct {
	Value     string
	Supported []validator.Draft
}

func (e *InvalidDraftError) Error() string {
	return fmt.Sprintf(
		"config property defaultDraft has invalid value '%s'. Supported versions are: %v",
		e.Value,
		e.Supported,
	)
}

type InvalidWorkersError struct {
	Value int
}

func (e *InvalidWorkersError) Error() string {
	return fmt.Sprintf("config property workers must be at least 1, got %d", e.Value)
}

type InvalidOutputError struct {
	Value string
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("config property output has invalid value '%s'. Use text or json", e.Value)
}

type ConfigExistsError struct {
	Path string
}

func (e *ConfigExistsError) Error() string {
	return fmt.Sprintf("config file %s already exists", e.Path)
}
