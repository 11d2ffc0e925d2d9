package notebook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// titleTemplate renders the first cell of a generated notebook.
var titleTemplate = template.Must(template.New("title").Parse(
	"# {{.Title}}\nAuthor: {{.AuthorName}}\nEmail: {{.AuthorEmail}}"))

// TemplateData holds the variables available to the title cell template.
type TemplateData struct {
	Title       string // base name of the topic directory
	AuthorName  string
	AuthorEmail string
}

// Path returns the notebook path for a topic directory: <dir>/<base>.ipynb.
func Path(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+Extension)
}

// NewTopic builds the starter notebook for a topic: a title cell followed by
// one empty code cell.
func NewTopic(data TemplateData) (*Notebook, error) {
	var buf bytes.Buffer
	if err := titleTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering title cell: %w", err)
	}

	nb := New()
	nb.Cells = append(nb.Cells,
		NewMarkdownCell(buf.String()),
		NewCodeCell(""),
	)
	return nb, nil
}

// Generate writes the starter notebook for dir, titled after the directory's
// base name. dir must already exist; exactly one file is created.
func Generate(dir, authorName, authorEmail string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("notebook directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	nb, err := NewTopic(TemplateData{
		Title:       filepath.Base(dir),
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
	})
	if err != nil {
		return "", err
	}

	path := Path(dir)
	if err := Write(path, nb); err != nil {
		return "", err
	}
	return path, nil
}
