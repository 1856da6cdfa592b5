package setup

import (
	"fmt"
	"os"

	"github.com/assistkit/assistkit/internal/schema"
	"go.yaml.in/yaml/v3"
)

// LoadAnswers reads a YAML or JSON answers file for non-interactive setup.
// The file is checked against the answers JSON schema before decoding;
// semantic checks are left to Resolve.
func LoadAnswers(path string) (*UserAnswers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %s: %w", path, err)
	}
	return ParseAnswers(data, path)
}

// ParseAnswers validates and decodes answers data. source names the data in
// error messages.
func ParseAnswers(data []byte, source string) (*UserAnswers, error) {
	result, err := schema.Validate(schema.DocumentAnswers, data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", source, err)
	}
	if !result.Valid {
		return nil, &schema.ValidationError{Source: source, Issues: result.Issues}
	}

	var a UserAnswers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return &a, nil
}

// Apply overlays the options present in opts onto a and returns the result.
// It lets command-line flags override an answers file.
func (o Options) Apply(a UserAnswers) UserAnswers {
	if o.Language != "" {
		a.Language = o.Language
	}
	if o.Framework != "" {
		a.Framework = o.Framework
	}
	if o.Commands != nil {
		a.Commands = append([]string{}, o.Commands...)
	}
	if o.Hooks != nil {
		a.Hooks = append([]string{}, o.Hooks...)
	}
	if o.MCPs != nil {
		a.MCPs = append([]string{}, o.MCPs...)
	}
	if o.Analytics != nil {
		a.Analytics = *o.Analytics
	}
	if o.AssumeYes {
		a.Confirm = true
	}
	return a
}
