package notebook

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/leuchtturm-labs/leuchtturm/internal/schema"
)

//go:embed schema/notebook.schema.json
var schemaBytes []byte

var nbSchema = schema.New("notebook.schema.json", schemaBytes)

// Extension is the file extension of notebook documents.
const Extension = ".ipynb"

// Format version written by New.
const (
	FormatMajor = 4
	FormatMinor = 5
)

// supportedFormats gates which nbformat versions Read accepts.
var supportedFormats = mustConstraint(">= 4.0, < 5.0")

// ErrUnreadable is returned by Read when a notebook cannot be read or parsed.
var ErrUnreadable = errors.New("notebook unreadable")

// Cell types.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// Notebook is an nbformat v4 document. Metadata fields are carried through
// untouched so that rewriting a notebook does not drop kernel information.
type Notebook struct {
	Cells         []*Cell        `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// Cell is a single notebook cell.
type Cell struct {
	ID             string         `json:"id,omitempty"`
	CellType       string         `json:"cell_type"`
	Metadata       map[string]any `json:"metadata"`
	Source         Source         `json:"source"`
	ExecutionCount *int           `json:"execution_count,omitempty"`
	Outputs        []any          `json:"outputs,omitempty"`
	Attachments    map[string]any `json:"attachments,omitempty"`
}

// MarshalJSON writes code cells with an explicit null execution_count and an
// outputs array, which nbformat requires even when empty.
func (c *Cell) MarshalJSON() ([]byte, error) {
	type plain Cell
	if c.CellType != CellCode {
		return json.Marshal((*plain)(c))
	}

	outputs := c.Outputs
	if outputs == nil {
		outputs = []any{}
	}
	return json.Marshal(struct {
		*plain
		ExecutionCount *int  `json:"execution_count"`
		Outputs        []any `json:"outputs"`
	}{(*plain)(c), c.ExecutionCount, outputs})
}

// Source is cell text. On disk it is either a single string or a list of
// lines; it is always written as a list of lines.
type Source string

// UnmarshalJSON accepts both nbformat encodings.
func (s *Source) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Source(str)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cell source must be a string or a list of strings: %w", err)
	}
	*s = Source(strings.Join(lines, ""))
	return nil
}

// MarshalJSON splits the source into lines, each keeping its newline.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Lines())
}

// Lines splits the source the way Jupyter stores it: every line but the last
// keeps its trailing newline.
func (s Source) Lines() []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(string(s), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// New returns an empty notebook in the current format.
func New() *Notebook {
	return &Notebook{
		Cells:         []*Cell{},
		Metadata:      map[string]any{},
		NBFormat:      FormatMajor,
		NBFormatMinor: FormatMinor,
	}
}

// NewMarkdownCell returns a markdown cell with the given source.
func NewMarkdownCell(source string) *Cell {
	return &Cell{
		ID:       newCellID(),
		CellType: CellMarkdown,
		Metadata: map[string]any{},
		Source:   Source(source),
	}
}

// NewCodeCell returns an unexecuted code cell with the given source.
func NewCodeCell(source string) *Cell {
	return &Cell{
		ID:       newCellID(),
		CellType: CellCode,
		Metadata: map[string]any{},
		Source:   Source(source),
		Outputs:  []any{},
	}
}

// newCellID returns an 8 hex digit id, the length Jupyter itself generates.
func newCellID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Read parses the notebook at path. Any failure wraps ErrUnreadable.
func Read(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	result, err := nbSchema.Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnreadable, path, result.Summary())
	}

	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	if err := checkFormat(nb.NBFormat, nb.NBFormatMinor); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	// Older writers omit cell metadata; nbformat requires it on write.
	for _, c := range nb.Cells {
		if c.Metadata == nil {
			c.Metadata = map[string]any{}
		}
	}
	return &nb, nil
}

// Write serializes nb to path, replacing any existing file.
func Write(path string, nb *Notebook) error {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return fmt.Errorf("marshaling notebook: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing notebook %s: %w", path, err)
	}
	return nil
}

// CellCount returns the number of cells in nb.
func (nb *Notebook) CellCount() int {
	return len(nb.Cells)
}

// Title returns the first heading line of the first cell with the leading
// markers removed, or "" if there is none.
func (nb *Notebook) Title() string {
	if len(nb.Cells) == 0 {
		return ""
	}
	for _, line := range strings.Split(string(nb.Cells[0].Source), "\n") {
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

// RetitleHeading replaces every occurrence of oldName with newName on the
// heading lines of the first cell and reports whether anything changed.
//
// The replacement is a plain substring substitution, so any other text on a
// heading line that contains oldName is rewritten as well.
func (nb *Notebook) RetitleHeading(oldName, newName string) bool {
	if len(nb.Cells) == 0 || oldName == "" {
		return false
	}

	cell := nb.Cells[0]
	lines := strings.Split(string(cell.Source), "\n")
	changed := false
	for i, line := range lines {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if replaced := strings.ReplaceAll(line, oldName, newName); replaced != line {
			lines[i] = replaced
			changed = true
		}
	}
	cell.Source = Source(strings.Join(lines, "\n"))
	return changed
}

func checkFormat(major, minor int) error {
	v, err := semver.NewVersion(fmt.Sprintf("%d.%d", major, minor))
	if err != nil {
		return fmt.Errorf("parsing nbformat version: %w", err)
	}
	if !supportedFormats.Check(v) {
		return fmt.Errorf("unsupported nbformat %s (want %s)", v, supportedFormats)
	}
	return nil
}

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}
