package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Document identifies which embedded JSON schema a document is checked against.
type Document string

const (
	DocumentCatalog Document = "catalog.schema.json"
	DocumentAnswers Document = "answers.schema.json"
)

var (
	compiled    map[Document]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // field reference, e.g. "hooks[0].event"; empty for the document root
	Message string
	Keyword string // Schema keyword that failed
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError is returned when a document fails schema validation.
type ValidationError struct {
	Source string
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%s does not match schema: %s", e.Source, strings.Join(parts, "; "))
}

// getSchemas compiles every embedded JSON schema once.
func getSchemas() (map[Document]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		docs := []Document{DocumentCatalog, DocumentAnswers}
		for _, d := range docs {
			raw, err := schemaFS.ReadFile("schemas/" + string(d))
			if err != nil {
				compileErr = fmt.Errorf("reading %s: %w", d, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling %s: %w", d, err)
				return
			}
			if err := c.AddResource(string(d), doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", d, err)
				return
			}
		}

		compiled = make(map[Document]*jsonschema.Schema, len(docs))
		for _, d := range docs {
			s, err := c.Compile(string(d))
			if err != nil {
				compileErr = fmt.Errorf("compiling %s: %w", d, err)
				return
			}
			compiled[d] = s
		}
	})
	return compiled, compileErr
}

// Validate checks raw YAML (or JSON) bytes against the given document schema.
// The error return is for parse or schema compilation failures; validation
// issues are returned in the ValidationResult.
func Validate(kind Document, data []byte) (*ValidationResult, error) {
	schemas, err := getSchemas()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	schema, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	value, err := jsonValue(&node)
	if err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// The validator wants json.Number for numbers, so go through JSON once.
	jsonData, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating %s: %w", kind, err)
	}
	return &ValidationResult{Issues: issuesFrom(ve)}, nil
}

// issuesFrom flattens the leaf causes of ve into issues, in document order
// and without repeats. $ref and allOf wrappers are skipped.
func issuesFrom(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := map[ValidationIssue]bool{}

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		if e.ErrorKind == nil {
			return
		}
		kw := e.ErrorKind.KeywordPath()
		if len(kw) == 0 || kw[len(kw)-1] == "$ref" || kw[len(kw)-1] == "allOf" {
			return
		}
		issue := ValidationIssue{
			Path:    fieldPath(e.InstanceLocation),
			Message: e.ErrorKind.LocalizedString(printer),
			Keyword: kw[len(kw)-1],
		}
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}
	walk(ve)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return issues
}

// fieldPath renders an instance location the way catalog and answers fields
// are written in messages, e.g. languages[2].frameworks[0].id.
func fieldPath(loc []string) string {
	var b strings.Builder
	for _, seg := range loc {
		if _, err := strconv.Atoi(seg); err == nil {
			fmt.Fprintf(&b, "[%s]", seg)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// jsonValue converts a YAML node tree into plain values encoding/json can
// marshal. Mapping keys are always taken as strings, so `1: x` becomes "1".
func jsonValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return jsonValue(n.Content[0])
	case yaml.AliasNode:
		return jsonValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := jsonValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := jsonValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}
