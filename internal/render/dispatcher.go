package render

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/devfolio/internal/blog"
)

var ErrMalformedTable = errors.New("malformed table content")

type BlockKind string

const (
	KindHeading        BlockKind = "heading"
	KindParagraph      BlockKind = "paragraph"
	KindTable          BlockKind = "table"
	KindCode           BlockKind = "code"
	KindList           BlockKind = "list"
	KindMethods        BlockKind = "methods"
	KindExamples       BlockKind = "examples"
	KindExample        BlockKind = "example"
	KindDecisionMatrix BlockKind = "decision_matrix"
	KindPatterns       BlockKind = "patterns"
	KindCallout        BlockKind = "callout"
	KindError          BlockKind = "error"
)

type ListStyle string

const (
	ListBullet ListStyle = "bullet"
	ListCheck  ListStyle = "check"
	ListCross  ListStyle = "cross"
	ListChips  ListStyle = "chips"
)

// Block is one presentation unit of a section. Only the fields relevant to
// its Kind are set.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Label string    `json:"label,omitempty"`
	Text  string    `json:"text,omitempty"`

	Code  *blog.CodeBlock `json:"code,omitempty"`
	Items []string        `json:"items,omitempty"`
	Style ListStyle       `json:"style,omitempty"`
	Table *Table          `json:"table,omitempty"`

	Methods   []blog.ServiceMethod `json:"methods,omitempty"`
	Examples  []blog.CodeExample   `json:"examples,omitempty"`
	Decisions []blog.DecisionItem  `json:"decisions,omitempty"`
	Patterns  []blog.Pattern       `json:"patterns,omitempty"`
}

type Table struct {
	Variant blog.TableVariant `json:"variant"`
	Headers []string          `json:"headers"`
	Rows    [][]string        `json:"rows"`
}

// tools recognized as comparison columns when a table is not tagged
var defaultComparisonColumns = []string{"Redux", "Zustand", "Context"}

// RenderSection maps a section to its blocks in a fixed order. Every present
// field produces output, none suppresses another.
func RenderSection(section blog.Section) ([]Block, error) {
	blocks := []Block{{Kind: KindHeading, Text: section.Title}}

	if section.Type == blog.SectionTypeTable {
		if section.Content != "" {
			table, err := ParseTable(section.Content, section.TableVariant, section.TableColumns)
			if err != nil {
				return nil, fmt.Errorf("section [%s]: %w", section.Title, err)
			}
			blocks = append(blocks, Block{Kind: KindTable, Table: table})
		}
	} else if section.Content != "" {
		blocks = append(blocks, Block{Kind: KindParagraph, Text: section.Content})
	}

	e := &section.Extras

	// code blocks
	if e.Code != nil {
		blocks = append(blocks, Block{Kind: KindCode, Code: e.Code})
	}
	for i := range e.CodeSamples {
		blocks = append(blocks, Block{Kind: KindCode, Label: e.CodeSamples[i].File, Code: &e.CodeSamples[i]})
	}
	if e.DockerCompose != nil {
		blocks = append(blocks, Block{Kind: KindCode, Label: "Docker Compose", Code: e.DockerCompose})
	}
	if e.K8sYaml != nil {
		blocks = append(blocks, Block{Kind: KindCode, Label: "Kubernetes Deployment", Code: e.K8sYaml})
	}

	// lists
	blocks = appendList(blocks, "", e.BulletPoints, ListBullet)
	blocks = appendList(blocks, "Best Practices", e.BestPractices, ListCheck)
	blocks = appendList(blocks, "Suggestions", e.Suggestions, ListBullet)
	blocks = appendList(blocks, "Pros", e.Pros, ListCheck)
	blocks = appendList(blocks, "Cons", e.Cons, ListCross)
	blocks = appendList(blocks, "Scaling Strategies", e.ScalingStrategies, ListBullet)
	blocks = appendList(blocks, "Benefits", e.Benefits, ListCheck)
	blocks = appendList(blocks, "Tips", e.Tips, ListBullet)
	blocks = appendList(blocks, "Options", e.Options, ListBullet)
	blocks = appendList(blocks, "Use Cases", e.UseCases, ListBullet)
	blocks = appendList(blocks, "Tools", e.Tools, ListChips)
	blocks = appendList(blocks, "Checklist", e.Checklist, ListCheck)

	// structured
	if len(e.Methods) > 0 {
		blocks = append(blocks, Block{Kind: KindMethods, Methods: e.Methods})
	}
	if len(e.Examples) > 0 {
		blocks = append(blocks, Block{Kind: KindExamples, Examples: e.Examples})
	}
	if e.Example != nil && (e.Example.Code != nil || e.Example.Text != "") {
		blocks = append(blocks, Block{Kind: KindExample, Label: "Example", Text: e.Example.Text, Code: e.Example.Code})
	}
	if len(e.DecisionMatrix) > 0 {
		blocks = append(blocks, Block{Kind: KindDecisionMatrix, Decisions: e.DecisionMatrix})
	}
	if len(e.Patterns) > 0 {
		blocks = append(blocks, Block{Kind: KindPatterns, Patterns: e.Patterns})
	}

	// callouts
	blocks = appendCallout(blocks, "Real-world Use Case", e.RealWorldUseCase)
	blocks = appendCallout(blocks, "Use Case", e.UseCase)
	blocks = appendCallout(blocks, "Benefit", e.Benefit)
	blocks = appendCallout(blocks, "Note", e.Note)
	blocks = appendCallout(blocks, "Advice", e.Advice)
	blocks = appendCallout(blocks, "Tip", e.Tip)

	return blocks, nil
}

func appendList(blocks []Block, label string, items []string, style ListStyle) []Block {
	if len(items) == 0 {
		return blocks
	}
	return append(blocks, Block{Kind: KindList, Label: label, Items: items, Style: style})
}

func appendCallout(blocks []Block, label, text string) []Block {
	if text == "" {
		return blocks
	}
	return append(blocks, Block{Kind: KindCallout, Label: label, Text: text})
}

// ParseTable decodes a JSON array of row objects. An explicit variant wins,
// otherwise the variant is guessed from the keys of the first row.
func ParseTable(content string, variant blog.TableVariant, columns []string) (*Table, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal([]byte(content), &rows); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTable, err)
	}

	if len(columns) == 0 {
		columns = defaultComparisonColumns
	}

	if variant == "" {
		variant = sniffVariant(rows, columns)
	} else if !variant.Valid() {
		return nil, fmt.Errorf("%w: unknown variant [%s]", ErrMalformedTable, variant)
	}

	table := &Table{
		Variant: variant,
		Rows:    make([][]string, 0, len(rows)),
	}

	if variant == blog.TableVariantComparison {
		table.Headers = append([]string{"Criteria"}, columns...)
		keys := append([]string{"feature"}, columns...)
		for _, row := range rows {
			cells := make([]string, len(keys))
			for i, key := range keys {
				cells[i] = cellValue(row, key)
			}
			table.Rows = append(table.Rows, cells)
		}
		return table, nil
	}

	// two column tables mix both keys, each row shows whichever it has
	table.Headers = []string{"Feature", "Use"}
	if variant == blog.TableVariantFeaturePurpose {
		table.Headers[1] = "Purpose"
	}
	for _, row := range rows {
		second := cellValue(row, "purpose")
		if second == "" {
			second = cellValue(row, "use")
		}
		table.Rows = append(table.Rows, []string{cellValue(row, "feature"), second})
	}
	return table, nil
}

func sniffVariant(rows []map[string]interface{}, columns []string) blog.TableVariant {
	if len(rows) == 0 {
		return blog.TableVariantFeatureUse
	}
	first := rows[0]
	for _, col := range columns {
		if _, ok := first[col]; ok {
			return blog.TableVariantComparison
		}
	}
	if truthy(first["purpose"]) {
		return blog.TableVariantFeaturePurpose
	}
	return blog.TableVariantFeatureUse
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	default:
		return true
	}
}

// cellValue renders a missing or null cell as empty.
func cellValue(row map[string]interface{}, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64, bool:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// RenderedSection is a section after dispatch. Err is set when the section
// could not be rendered, Blocks then holds a single error block.
type RenderedSection struct {
	Title  string
	Blocks []Block
	Err    error
}

type Document struct {
	Post     *blog.Post
	Sections []RenderedSection
}

// RenderPost renders every section on its own. A failing section is replaced
// by an error block and does not affect the others.
func RenderPost(post *blog.Post) Document {
	doc := Document{
		Post:     post,
		Sections: make([]RenderedSection, 0, len(post.Sections)),
	}
	for i := range post.Sections {
		s := post.Sections[i]
		blocks, err := RenderSection(s)
		if err != nil {
			log.Errorf("render post [%s], section %d: %s", post.Slug, i, err)
			doc.Sections = append(doc.Sections, RenderedSection{
				Title: s.Title,
				Err:   err,
				Blocks: []Block{
					{Kind: KindError, Label: s.Title, Text: "This section could not be displayed."},
				},
			})
			continue
		}
		doc.Sections = append(doc.Sections, RenderedSection{Title: s.Title, Blocks: blocks})
	}
	return doc
}

// Failed returns the number of sections that hit the error boundary.
func (d Document) Failed() int {
	n := 0
	for _, s := range d.Sections {
		if s.Err != nil {
			n++
		}
	}
	return n
}
