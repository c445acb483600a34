// Package config loads the features.yaml workspace configuration: project
// metadata, the ordered feature catalog, label definitions, and the research
// tracking entries (domains, industries, agents, pilots).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLabelColor is used when a label definition omits a color.
const DefaultLabelColor = "0366d6"

// ErrUnknownFeature is returned when a feature id is not in the catalog.
var ErrUnknownFeature = errors.New("unknown feature")

// Config is the decoded features.yaml file.
type Config struct {
	Project    Project     `yaml:"project"`
	Features   FeatureSet  `yaml:"features"`
	Labels     LabelGroups `yaml:"labels"`
	Domains    []Domain    `yaml:"domains"`
	Industries []Industry  `yaml:"industries"`
	Agents     []Agent     `yaml:"agents"`
	Pilots     []Pilot     `yaml:"pilots"`
}

// Project identifies the repository the workflow operates against.
type Project struct {
	Name string `yaml:"name"`
	Repo string `yaml:"repo"`
}

// Feature is a single unit of work from the features map.
type Feature struct {
	ID                 string   `yaml:"-"`
	Title              string   `yaml:"title"`
	Description        string   `yaml:"description"`
	Phase              string   `yaml:"phase"`
	Component          string   `yaml:"component"`
	Size               string   `yaml:"size"`
	AcceptanceCriteria []string `yaml:"acceptance_criteria"`
	Files              []string `yaml:"files"`
}

// PhaseNumber strips the "phase:" prefix and any trailing slug.
// "phase:1-foundation" -> "1".
func (f Feature) PhaseNumber() string {
	p := strings.TrimPrefix(f.Phase, "phase:")
	if i := strings.Index(p, "-"); i >= 0 {
		p = p[:i]
	}
	return p
}

// SizeValue strips the "size:" label prefix.
func (f Feature) SizeValue() string {
	return strings.TrimPrefix(f.Size, "size:")
}

// ComponentValue strips the "component:" label prefix.
func (f Feature) ComponentValue() string {
	return strings.TrimPrefix(f.Component, "component:")
}

// FeatureSet preserves the YAML document order of the features map, which is
// the order the catalog is listed in.
type FeatureSet struct {
	order []string
	byID  map[string]Feature
}

// UnmarshalYAML decodes a mapping node while recording key order.
func (fs *FeatureSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("features: expected mapping, got %v", node.Kind)
	}
	fs.byID = make(map[string]Feature, len(node.Content)/2)
	fs.order = make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var id string
		if err := node.Content[i].Decode(&id); err != nil {
			return fmt.Errorf("features: bad key: %w", err)
		}
		var f Feature
		if err := node.Content[i+1].Decode(&f); err != nil {
			return fmt.Errorf("features[%s]: %w", id, err)
		}
		f.ID = id
		fs.byID[id] = f
		fs.order = append(fs.order, id)
	}
	return nil
}

// IDs returns feature ids in document order.
func (fs FeatureSet) IDs() []string { return fs.order }

// Len reports the number of features.
func (fs FeatureSet) Len() int { return len(fs.order) }

// Get looks up a feature by id.
func (fs FeatureSet) Get(id string) (Feature, bool) {
	f, ok := fs.byID[id]
	return f, ok
}

// Feature looks up a feature by id, wrapping ErrUnknownFeature on miss.
func (c *Config) Feature(id string) (Feature, error) {
	f, ok := c.Features.Get(id)
	if !ok {
		return Feature{}, fmt.Errorf("%w: %s", ErrUnknownFeature, id)
	}
	return f, nil
}

// LabelGroups holds the label definitions created by setup-labels.
type LabelGroups struct {
	Phases     []Label `yaml:"phases"`
	Components []Label `yaml:"components"`
	Sizes      []Label `yaml:"sizes"`
}

// All returns every defined label, phases first.
func (g LabelGroups) All() []Label {
	out := make([]Label, 0, len(g.Phases)+len(g.Components)+len(g.Sizes))
	out = append(out, g.Phases...)
	out = append(out, g.Components...)
	out = append(out, g.Sizes...)
	return out
}

// Label is a GitHub label definition.
type Label struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
}

// Domain describes a regulatory domain research entry.
type Domain struct {
	Name         string      `yaml:"name"`
	Slug         string      `yaml:"slug"`
	Regulator    string      `yaml:"regulator"`
	Jurisdiction string      `yaml:"jurisdiction"`
	Categories   []TableItem `yaml:"categories"`
	Resources    []Resource  `yaml:"resources"`
	Notes        string      `yaml:"notes"`
	Effort       string      `yaml:"effort"`
	Labels       []string    `yaml:"labels"`
}

// Industry describes an industry research entry.
type Industry struct {
	Name                     string      `yaml:"name"`
	Slug                     string      `yaml:"slug"`
	Regulators               []string    `yaml:"regulators"`
	MarketSize               string      `yaml:"market_size"`
	ClaimTypes               []ClaimType `yaml:"claim_types"`
	FederalRegulations       []string    `yaml:"federal_regulations"`
	StateRegulations         []string    `yaml:"state_regulations"`
	SelfRegulatory           []string    `yaml:"self_regulatory"`
	ComplianceConsiderations []string    `yaml:"compliance_considerations"`
	PilotCandidates          []TableItem `yaml:"pilot_candidates"`
	Resources                []Resource  `yaml:"resources"`
	Notes                    string      `yaml:"notes"`
	Effort                   string      `yaml:"effort"`
	Labels                   []string    `yaml:"labels"`
}

// Agent describes an agent specification entry.
type Agent struct {
	Name                string      `yaml:"name"`
	Type                string      `yaml:"type"`
	Priority            string      `yaml:"priority"`
	Complexity          string      `yaml:"complexity"`
	Purpose             string      `yaml:"purpose"`
	InputSchema         string      `yaml:"input_schema"`
	OutputSchema        string      `yaml:"output_schema"`
	RequiredInputs      []string    `yaml:"required_inputs"`
	OptionalInputs      []string    `yaml:"optional_inputs"`
	OutputFields        []string    `yaml:"output_fields"`
	Capabilities        []string    `yaml:"capabilities"`
	ProcessingLogic     string      `yaml:"processing_logic"`
	UpstreamAgents      []string    `yaml:"upstream_agents"`
	DownstreamAgents    []string    `yaml:"downstream_agents"`
	ExternalServices    []string    `yaml:"external_services"`
	ErrorHandling       []ErrorRule `yaml:"error_handling"`
	LatencyTarget       string      `yaml:"latency_target"`
	ThroughputTarget    string      `yaml:"throughput_target"`
	AccuracyTarget      string      `yaml:"accuracy_target"`
	PromptNotes         string      `yaml:"prompt_notes"`
	TestScenarios       []string    `yaml:"test_scenarios"`
	ImplementationNotes string      `yaml:"implementation_notes"`
	Effort              string      `yaml:"effort"`
	RelatedDomain       string      `yaml:"related_domain"`
	Labels              []string    `yaml:"labels"`
}

// Pilot describes a pilot task entry.
type Pilot struct {
	Name            string   `yaml:"name"`
	Industry        string   `yaml:"industry"`
	Agents          []string `yaml:"agents"`
	SourceType      string   `yaml:"source_type"`
	SourceURL       string   `yaml:"source_url"`
	DataVolume      string   `yaml:"data_volume"`
	DateRange       string   `yaml:"date_range"`
	InScope         []string `yaml:"in_scope"`
	OutOfScope      []string `yaml:"out_of_scope"`
	DetectionTarget string   `yaml:"detection_target"`
	AccuracyTarget  string   `yaml:"accuracy_target"`
	TimeTarget      string   `yaml:"time_target"`
	FPTarget        string   `yaml:"fp_target"`
	SuccessCriteria []string `yaml:"success_criteria"`
	Notes           string   `yaml:"notes"`
	Effort          string   `yaml:"effort"`
	Prerequisites   []string `yaml:"prerequisites"`
	Labels          []string `yaml:"labels"`
}

// TableItem is a list entry that may be either a bare string or a mapping
// with name/description/priority (or name/reason/priority) keys.
type TableItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
	Reason      string `yaml:"reason"`

	// Scalar is true when the YAML entry was a bare string.
	Scalar bool `yaml:"-"`
}

// UnmarshalYAML accepts scalar or mapping forms.
func (t *TableItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Name = node.Value
		t.Scalar = true
		return nil
	}
	type plain TableItem
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = TableItem(p)
	return nil
}

// ClaimType is one row of the industry claim-types table.
type ClaimType struct {
	Type       string `yaml:"type"`
	Example    string `yaml:"example"`
	Risk       string `yaml:"risk"`
	Regulation string `yaml:"regulation"`

	Scalar bool `yaml:"-"`
}

// UnmarshalYAML accepts scalar or mapping forms.
func (c *ClaimType) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Type = node.Value
		c.Scalar = true
		return nil
	}
	type plain ClaimType
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = ClaimType(p)
	return nil
}

// ErrorRule is one row of the agent error-handling table.
type ErrorRule struct {
	Error    string `yaml:"error"`
	Strategy string `yaml:"strategy"`

	Scalar bool `yaml:"-"`
}

// UnmarshalYAML accepts scalar or mapping forms.
func (e *ErrorRule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Error = node.Value
		e.Scalar = true
		return nil
	}
	type plain ErrorRule
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = ErrorRule(p)
	return nil
}

// Resource is a reference link. Mapping entries render as markdown links,
// scalar entries as plain bullets.
type Resource struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`

	Text   string `yaml:"-"`
	Scalar bool   `yaml:"-"`
}

// UnmarshalYAML accepts scalar or mapping forms.
func (r *Resource) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Text = node.Value
		r.Scalar = true
		return nil
	}
	type plain Resource
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Resource(p)
	return nil
}

// Load reads and decodes a features.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
