package topic

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leuchtturm-labs/leuchtturm/internal/notebook"
	"github.com/leuchtturm-labs/leuchtturm/internal/prompt"
	"github.com/leuchtturm-labs/leuchtturm/internal/runcontrol"
)

// Asset subdirectories created in every topic.
const (
	ImagesDir = "images"
	PapersDir = "papers"
)

const dirPerm os.FileMode = 0755

var (
	// ErrStateMismatch means the topic set and the filesystem disagree about a topic.
	ErrStateMismatch = errors.New("topic state mismatch")
	// ErrAlreadyExists means the topic directory already exists.
	ErrAlreadyExists = errors.New("topic already exists")
	// ErrNotFound means the topic is not in the topic set.
	ErrNotFound = errors.New("topic not found")
	// ErrRenameConflict means the rename target path already exists.
	ErrRenameConflict = errors.New("rename target exists")
	// ErrInvalidName means the name cannot be used as a topic directory.
	ErrInvalidName = errors.New("invalid topic name")
)

// Manager creates, removes and renames topics under a notebook root and keeps
// the run-control record in step with the filesystem.
type Manager struct {
	root    string
	rc      *runcontrol.RunControl
	confirm prompt.Confirmer
	logger  *slog.Logger
}

// NewManager returns a Manager for root. Every successful mutation persists
// rc to the root's run-control file.
func NewManager(root string, rc *runcontrol.RunControl, confirm prompt.Confirmer, logger *slog.Logger) *Manager {
	return &Manager{
		root:    root,
		rc:      rc,
		confirm: confirm,
		logger:  logger,
	}
}

// ValidateName rejects names that are empty, dot entries, or contain a path
// separator.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// Dir returns the directory of the named topic.
func (m *Manager) Dir(name string) string {
	return filepath.Join(m.root, name)
}

// Create makes <root>/<name> with its asset folders and starter notebook, then
// adds name to the topic set. The topic set and the filesystem must agree
// about name beforehand.
func (m *Manager) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	dir := m.Dir(name)
	tracked := m.rc.Has(name)
	onDisk, err := pathExists(dir)
	if err != nil {
		return err
	}
	if tracked != onDisk {
		return fmt.Errorf("%w: %q tracked=%t on disk=%t", ErrStateMismatch, name, tracked, onDisk)
	}

	if err := os.Mkdir(dir, dirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, dir)
		}
		return fmt.Errorf("creating topic directory: %w", err)
	}

	for _, sub := range []string{ImagesDir, PapersDir} {
		if err := os.Mkdir(filepath.Join(dir, sub), dirPerm); err != nil {
			return fmt.Errorf("creating %s directory: %w", sub, err)
		}
	}

	path, err := notebook.Generate(dir, m.rc.AuthorName, m.rc.AuthorEmail)
	if err != nil {
		return fmt.Errorf("generating notebook: %w", err)
	}

	m.rc.Add(name)
	if err := m.persist(); err != nil {
		return err
	}

	m.logger.Info("topic created", "topic", name, "notebook", path)
	return nil
}

// Remove deletes the topic directory tree and drops name from the topic set
// after confirmation. A declined confirmation changes nothing. A tracked topic
// whose directory is gone is a state mismatch and is left as is.
func (m *Manager) Remove(name string) error {
	if !m.rc.Has(name) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	onDisk, err := pathExists(m.Dir(name))
	if err != nil {
		return err
	}
	if !onDisk {
		return fmt.Errorf("%w: %q tracked=true on disk=false", ErrStateMismatch, name)
	}

	ok, err := m.confirm.Confirm(fmt.Sprintf("Remove %s?", name))
	if err != nil {
		return err
	}
	if !ok {
		m.logger.Info("removal cancelled", "topic", name)
		return nil
	}

	if err := os.RemoveAll(m.Dir(name)); err != nil {
		return fmt.Errorf("removing topic directory: %w", err)
	}

	m.rc.Remove(name)
	if err := m.persist(); err != nil {
		return err
	}

	m.logger.Info("topic removed", "topic", name)
	return nil
}

// Rename moves <root>/<oldName> to <root>/<newName>, renames the notebook
// inside it, rewrites the title heading and updates the topic set.
//
// Steps after the directory rename are not rolled back on failure.
func (m *Manager) Rename(oldName, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	if !m.rc.Has(oldName) {
		return fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}

	oldDir, newDir := m.Dir(oldName), m.Dir(newName)
	taken, err := pathExists(newDir)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrRenameConflict, newDir)
	}

	if err := os.Rename(oldDir, newDir); err != nil {
		return fmt.Errorf("renaming topic directory: %w", err)
	}

	oldPath := filepath.Join(newDir, oldName+notebook.Extension)
	newPath := notebook.Path(newDir)
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("renaming notebook: %w", err)
	}

	nb, err := notebook.Read(newPath)
	if err != nil {
		return err
	}
	if nb.RetitleHeading(oldName, newName) {
		if err := notebook.Write(newPath, nb); err != nil {
			return err
		}
	}

	m.rc.Rename(oldName, newName)
	if err := m.persist(); err != nil {
		return err
	}

	m.logger.Info("topic renamed", "from", oldName, "to", newName)
	return nil
}

func (m *Manager) persist() error {
	if err := m.rc.Export(runcontrol.Path(m.root)); err != nil {
		return fmt.Errorf("saving run control: %w", err)
	}
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
