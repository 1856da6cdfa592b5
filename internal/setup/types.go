package setup

// ProjectInfo is what the detector found in the project. It only seeds the
// flow; it is never modified.
type ProjectInfo struct {
	DetectedLanguage  string
	DetectedFramework string
}

// UserAnswers is the raw result of the question flow (or an answers file).
type UserAnswers struct {
	Language  string   `yaml:"language" json:"language"`
	Framework string   `yaml:"framework,omitempty" json:"framework,omitempty"`
	Commands  []string `yaml:"commands,omitempty" json:"commands,omitempty"`
	Hooks     []string `yaml:"hooks,omitempty" json:"hooks,omitempty"`
	MCPs      []string `yaml:"mcps,omitempty" json:"mcps,omitempty"`
	Analytics bool     `yaml:"analytics" json:"analytics"`
	Confirm   bool     `yaml:"confirm" json:"confirm"`
}

// Options carries answers fixed before the flow starts, typically from
// command-line flags. A present option suppresses its question.
//
// Language and Framework are absent when empty. Commands, Hooks and MCPs are
// absent when nil; a non-nil empty slice means "none". Analytics is absent
// when nil.
type Options struct {
	Language  string
	Framework string
	Commands  []string
	Hooks     []string
	MCPs      []string
	Analytics *bool

	// AssumeYes answers the final confirmation with yes.
	AssumeYes bool
}

// TemplateConfig is the validated, normalized configuration consumed by the
// renderer. It is never partially valid and is not mutated after Resolve
// returns it.
type TemplateConfig struct {
	Language      string   `yaml:"language" json:"language"`
	Framework     string   `yaml:"framework" json:"framework"`
	Commands      []string `yaml:"commands" json:"commands"`
	Hooks         []string `yaml:"hooks" json:"hooks"`
	MCPs          []string `yaml:"mcps" json:"mcps"`
	Analytics     bool     `yaml:"analytics" json:"analytics"`
	SchemaVersion string   `yaml:"schema_version" json:"schema_version"`
}
