package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks that the file at filePath is well-formed YAML.
// A missing or empty file is valid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		return validateYAMLBytes(data, filePath)
	case os.IsNotExist(err):
		return nil
	case os.IsPermission(err):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	default:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
}

func validateYAMLBytes(data []byte, filePath string) error {
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeError *yaml.TypeError
	if errors.As(err, &typeError) {
		return &ValidationError{
			FilePath: filePath,
			Message:  strings.Join(typeError.Errors, "; "),
		}
	}
	line, column := extractLineColumn(err.Error())
	return &ValidationError{
		FilePath: filePath,
		Line:     line,
		Column:   column,
		Message:  cleanYAMLError(err.Error()),
	}
}

// ValidateConfigValues validates configuration values against the struct tag constraints.
// Returns nil if valid, or a ValidationError naming the first offending key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return &ValidationError{
			FilePath: filePath,
			Field:    toSnakeCase(fieldErr.Field()),
			Message:  formatValidationError(fieldErr),
		}
	}
	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// extractLineColumn pulls line and column numbers out of a yaml.v3 error
// such as "yaml: line 5: could not find expected ':'". Returns 0, 0 if absent.
func extractLineColumn(errMsg string) (line, column int) {
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError strips the "yaml: line X:" prefix.
func cleanYAMLError(errMsg string) string {
	if !strings.HasPrefix(errMsg, "yaml:") {
		return errMsg
	}
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		return errMsg[idx+2:]
	}
	return errMsg
}

func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// toSnakeCase converts a CamelCase field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
