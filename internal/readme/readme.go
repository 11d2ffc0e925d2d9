package readme

import (
	"errors"
	"fmt"
	"io/fs"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	"github.com/leuchtturm-labs/leuchtturm/internal/notebook"
	"github.com/leuchtturm-labs/leuchtturm/internal/prompt"
	"github.com/leuchtturm-labs/leuchtturm/internal/runcontrol"
)

// FileName is the README written at the notebook root.
const FileName = "README.md"

// ErrNotebookUnreadable is returned by Render when a topic's notebook cannot
// be read; no README is produced in that case.
var ErrNotebookUnreadable = errors.New("cannot render README")

// Options controls how links and badges are rendered.
type Options struct {
	// ViewerURL is a link pattern with {host}, {project} and {topic}
	// placeholders.
	ViewerURL string
	// Glyph is repeated to form a badge.
	Glyph string
}

// Row is one rendered topic entry.
type Row struct {
	Topic     string
	Link      string
	CellCount int
	Badge     string
}

// String formats the row as a Markdown table line.
func (r Row) String() string {
	return fmt.Sprintf("[%s](%s) | %s", r.Topic, r.Link, r.Badge)
}

// Rows computes the link and badge of every topic in collection order.
func Rows(root string, rc *runcontrol.RunControl, opts Options) ([]Row, error) {
	topics := rc.Topics()
	rows := make([]Row, 0, len(topics))
	for _, topic := range topics {
		nb, err := notebook.Read(notebook.Path(filepath.Join(root, topic)))
		if err != nil {
			return nil, fmt.Errorf("%w: topic %q: %w", ErrNotebookUnreadable, topic, err)
		}

		count := nb.CellCount()
		rows = append(rows, Row{
			Topic:     topic,
			Link:      Link(opts.ViewerURL, rc.HostIdentity, rc.ProjectIdentity, topic),
			CellCount: count,
			Badge:     Badge(opts.Glyph, count),
		})
	}
	return rows, nil
}

// Render produces the full README for the topics in rc.
func Render(root string, rc *runcontrol.RunControl, opts Options) (string, error) {
	rows, err := Rows(root, rc, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", rc.ProjectIdentity)
	fmt.Fprintf(&b, "Author: %s (%s)\n", rc.AuthorName, rc.AuthorEmail)
	b.WriteString("\n## Contents\n")
	b.WriteString("Topic | Cells\n")
	b.WriteString("--- | ---\n")
	for _, row := range rows {
		b.WriteString(row.String())
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Link fills the viewer pattern. Spaces in the topic name become %20; no
// other escaping is applied.
func Link(pattern, host, project, topic string) string {
	return strings.NewReplacer(
		"{host}", host,
		"{project}", project,
		"{topic}", strings.ReplaceAll(topic, " ", "%20"),
	).Replace(pattern)
}

// Badge repeats glyph floor(log2(cellCount)) times; 0 or 1 cells yield "".
//
// NOTE: the log2 scale is inherited behavior and most likely a defect (a
// plain cell count was probably intended). It is kept as is until the
// product owner decides otherwise.
func Badge(glyph string, cellCount int) string {
	if cellCount < 1 {
		return ""
	}
	return strings.Repeat(glyph, bits.Len(uint(cellCount))-1)
}

// Write stores content at path. An existing file is only replaced after c
// confirms; the return value reports whether the file was written.
func Write(path, content string, c prompt.Confirmer) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		ok, err := c.Confirm(fmt.Sprintf("%s already exists. Overwrite?", filepath.Base(path)))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
