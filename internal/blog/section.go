package blog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

type SectionType string

const (
	SectionTypeTable SectionType = "table"
	SectionTypeCode  SectionType = "code"
	SectionTypeText  SectionType = "text"
)

func (t SectionType) Valid() bool {
	switch t {
	case SectionTypeTable, SectionTypeCode, SectionTypeText:
		return true
	default:
		return false
	}
}

// TableVariant tags the row shape of a table section's content.
// Empty means the shape has to be inferred from the rows.
type TableVariant string

const (
	TableVariantComparison     TableVariant = "comparison"
	TableVariantFeaturePurpose TableVariant = "feature_purpose"
	TableVariantFeatureUse     TableVariant = "feature_use"
)

func (v TableVariant) Valid() bool {
	switch v {
	case TableVariantComparison, TableVariantFeaturePurpose, TableVariantFeatureUse:
		return true
	default:
		return false
	}
}

// Section is one block of a post body. Content holds plain text, or a JSON
// encoded row array when Type is table. Any subset of Extras can be set.
type Section struct {
	Title   string      `json:"title"`
	Content string      `json:"content,omitempty"`
	Type    SectionType `json:"type,omitempty"`

	Extras
}

// Extras holds the optional presentation fields of a section. It is stored as
// is in the sections.metadata column.
type Extras struct {
	// code blocks
	Code          *CodeBlock  `json:"code,omitempty"`
	CodeSamples   []CodeBlock `json:"code_samples,omitempty"`
	DockerCompose *CodeBlock  `json:"docker_compose,omitempty"`
	K8sYaml       *CodeBlock  `json:"k8s_yaml,omitempty"`

	// lists
	BulletPoints      []string `json:"bullet_points,omitempty"`
	BestPractices     []string `json:"best_practices,omitempty"`
	Suggestions       []string `json:"suggestions,omitempty"`
	Pros              []string `json:"pros,omitempty"`
	Cons              []string `json:"cons,omitempty"`
	ScalingStrategies []string `json:"scaling_strategies,omitempty"`
	Benefits          []string `json:"benefits,omitempty"`
	Tips              []string `json:"tips,omitempty"`
	Options           []string `json:"options,omitempty"`
	UseCases          []string `json:"use_cases,omitempty"`
	Tools             []string `json:"tools,omitempty"`
	Checklist         []string `json:"checklist,omitempty"`

	// structured items
	Methods        []ServiceMethod `json:"methods,omitempty"`
	Examples       []CodeExample   `json:"examples,omitempty"`
	Example        *Example        `json:"example,omitempty"`
	DecisionMatrix []DecisionItem  `json:"decision_matrix,omitempty"`
	Patterns       []Pattern       `json:"patterns,omitempty"`

	// single text callouts
	RealWorldUseCase string `json:"real_world_use_case,omitempty"`
	UseCase          string `json:"use_case,omitempty"`
	Benefit          string `json:"benefit,omitempty"`
	Note             string `json:"note,omitempty"`
	Advice           string `json:"advice,omitempty"`
	Tip              string `json:"tip,omitempty"`

	// table tagging
	TableVariant TableVariant `json:"table_variant,omitempty"`
	TableColumns []string     `json:"table_columns,omitempty"`
}

type CodeBlock struct {
	Language string `json:"language"`
	Content  string `json:"content"`
	File     string `json:"file,omitempty"`
}

type ServiceMethod struct {
	Method   string `json:"method"`
	Benefit  string `json:"benefit"`
	Drawback string `json:"drawback"`
}

type CodeExample struct {
	Type    string `json:"type"`
	UseCase string `json:"use_case"`
	Code    string `json:"code"`
}

type DecisionItem struct {
	Scenario       string `json:"scenario"`
	Recommendation string `json:"recommendation"`
}

type Pattern struct {
	Title   string     `json:"title"`
	Code    *CodeBlock `json:"code,omitempty"`
	Tool    string     `json:"tool,omitempty"`
	Command string     `json:"command,omitempty"`
	Tip     string     `json:"tip,omitempty"`
}

// Example is either a code block or plain text. On the wire it is a JSON
// object or a JSON string respectively.
type Example struct {
	Text string
	Code *CodeBlock
}

var errEmptyExample = errors.New("example: empty value")

func (e Example) MarshalJSON() ([]byte, error) {
	if e.Code != nil {
		return json.Marshal(e.Code)
	}
	return json.Marshal(e.Text)
}

func (e *Example) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errEmptyExample
	}
	if data[0] == '"' {
		e.Code = nil
		return json.Unmarshal(data, &e.Text)
	}
	var cb CodeBlock
	if err := json.Unmarshal(data, &cb); err != nil {
		return err
	}
	e.Text = ""
	e.Code = &cb
	return nil
}

func (s Section) Clone() Section {
	c := s
	c.Code = cloneCodeBlock(s.Code)
	c.DockerCompose = cloneCodeBlock(s.DockerCompose)
	c.K8sYaml = cloneCodeBlock(s.K8sYaml)
	if s.CodeSamples != nil {
		c.CodeSamples = append([]CodeBlock{}, s.CodeSamples...)
	}

	c.BulletPoints = cloneStrings(s.BulletPoints)
	c.BestPractices = cloneStrings(s.BestPractices)
	c.Suggestions = cloneStrings(s.Suggestions)
	c.Pros = cloneStrings(s.Pros)
	c.Cons = cloneStrings(s.Cons)
	c.ScalingStrategies = cloneStrings(s.ScalingStrategies)
	c.Benefits = cloneStrings(s.Benefits)
	c.Tips = cloneStrings(s.Tips)
	c.Options = cloneStrings(s.Options)
	c.UseCases = cloneStrings(s.UseCases)
	c.Tools = cloneStrings(s.Tools)
	c.Checklist = cloneStrings(s.Checklist)
	c.TableColumns = cloneStrings(s.TableColumns)

	if s.Methods != nil {
		c.Methods = append([]ServiceMethod{}, s.Methods...)
	}
	if s.Examples != nil {
		c.Examples = append([]CodeExample{}, s.Examples...)
	}
	if s.DecisionMatrix != nil {
		c.DecisionMatrix = append([]DecisionItem{}, s.DecisionMatrix...)
	}
	if s.Example != nil {
		c.Example = &Example{Text: s.Example.Text, Code: cloneCodeBlock(s.Example.Code)}
	}
	if s.Patterns != nil {
		c.Patterns = make([]Pattern, len(s.Patterns))
		for i, p := range s.Patterns {
			p.Code = cloneCodeBlock(p.Code)
			c.Patterns[i] = p
		}
	}
	return c
}

func cloneCodeBlock(cb *CodeBlock) *CodeBlock {
	if cb == nil {
		return nil
	}
	c := *cb
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
