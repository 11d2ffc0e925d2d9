package app

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/runcontrol"
	"github.com/leuchtturm-labs/leuchtturm/internal/topic"
)

// Command is one of the operations a single invocation performs. The set of
// implementations is closed: Configure, Readme, Create, Remove, Rename, List.
type Command interface {
	// Validate checks the arguments before anything is loaded or touched.
	Validate() error
	command()
}

// Configure sets the identity fields. With a zero Identity the fields are
// asked for interactively.
type Configure struct {
	Identity runcontrol.Identity
}

// Readme regenerates README.md.
type Readme struct{}

// Create adds a new topic.
type Create struct {
	Name string
}

// Remove deletes a topic after confirmation.
type Remove struct {
	Name string
}

// Rename moves a topic to a new name.
type Rename struct {
	Old string
	New string
}

// List reports the tracked and on-disk state of every topic.
type List struct{}

func (Configure) Validate() error { return nil }
func (Readme) Validate() error    { return nil }
func (List) Validate() error      { return nil }

func (c Create) Validate() error { return topic.ValidateName(c.Name) }
func (c Remove) Validate() error { return topic.ValidateName(c.Name) }

func (c Rename) Validate() error {
	if err := topic.ValidateName(c.Old); err != nil {
		return err
	}
	return topic.ValidateName(c.New)
}

func (Configure) command() {}
func (Readme) command()    {}
func (Create) command()    {}
func (Remove) command()    {}
func (Rename) command()    {}
func (List) command()      {}
