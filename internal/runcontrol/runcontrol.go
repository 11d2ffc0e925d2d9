package runcontrol

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/leuchtturm-labs/leuchtturm/internal/branding"
	"github.com/leuchtturm-labs/leuchtturm/internal/schema"
)

//go:embed schema/runcontrol.schema.json
var schemaBytes []byte

var rcSchema = schema.New("runcontrol.schema.json", schemaBytes)

var (
	// ErrConfigMissing is returned by Load when the run-control file does not exist.
	ErrConfigMissing = errors.New("run control missing")
	// ErrConfigCorrupt is returned by Load when the file is not a valid run-control record.
	ErrConfigCorrupt = errors.New("run control corrupt")
)

// Default identity values for a fresh notebook root.
const (
	DefaultProject     = "LEUCHTTURM"
	DefaultAuthor      = "Author Name"
	DefaultAuthorEmail = "author@email.com"
)

// RunControl is the persisted identity record and topic set of a notebook root.
type RunControl struct {
	HostIdentity    string
	ProjectIdentity string
	AuthorName      string
	AuthorEmail     string

	// topics is kept in collection order; Export writes it sorted.
	topics []string
}

// file is the on-disk JSON layout.
type file struct {
	HostIdentity    string   `json:"host_identity"`
	ProjectIdentity string   `json:"project_identity"`
	AuthorName      string   `json:"author_name"`
	AuthorEmail     string   `json:"author_email"`
	Topics          []string `json:"topics"`
}

// Empty returns a RunControl with default identities and no topics.
func Empty() *RunControl {
	return &RunControl{
		ProjectIdentity: DefaultProject,
		AuthorName:      DefaultAuthor,
		AuthorEmail:     DefaultAuthorEmail,
	}
}

// Path returns the run-control file path for a notebook root.
func Path(root string) string {
	return filepath.Join(root, branding.RCFile())
}

// Load reads and validates the run-control file at path.
func Load(path string) (*RunControl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("reading run control: %w", err)
	}

	result, err := rcSchema.Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s: %s", ErrConfigCorrupt, path, result.Summary())
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, path, err)
	}

	return &RunControl{
		HostIdentity:    f.HostIdentity,
		ProjectIdentity: f.ProjectIdentity,
		AuthorName:      f.AuthorName,
		AuthorEmail:     f.AuthorEmail,
		topics:          f.Topics,
	}, nil
}

// Export overwrites path with the record, topics sorted lexicographically.
// The write is not atomic.
func (rc *RunControl) Export(path string) error {
	topics := slices.Clone(rc.topics)
	if topics == nil {
		topics = []string{}
	}
	slices.Sort(topics)

	data, err := json.MarshalIndent(file{
		HostIdentity:    rc.HostIdentity,
		ProjectIdentity: rc.ProjectIdentity,
		AuthorName:      rc.AuthorName,
		AuthorEmail:     rc.AuthorEmail,
		Topics:          topics,
	}, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling run control: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing run control: %w", err)
	}
	return nil
}

// Topics returns a copy of the topic names in collection order.
func (rc *RunControl) Topics() []string {
	return slices.Clone(rc.topics)
}

// Has reports whether name is in the topic set.
func (rc *RunControl) Has(name string) bool {
	return slices.Contains(rc.topics, name)
}

// Add appends name to the topic set. Adding an existing name is a no-op.
func (rc *RunControl) Add(name string) {
	if rc.Has(name) {
		return
	}
	rc.topics = append(rc.topics, name)
}

// Remove drops name from the topic set and reports whether it was present.
func (rc *RunControl) Remove(name string) bool {
	i := slices.Index(rc.topics, name)
	if i < 0 {
		return false
	}
	rc.topics = slices.Delete(rc.topics, i, i+1)
	return true
}

// Rename removes oldName and appends newName.
func (rc *RunControl) Rename(oldName, newName string) {
	rc.Remove(oldName)
	rc.Add(newName)
}
