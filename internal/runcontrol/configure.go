package runcontrol

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/prompt"
)

// Identity holds optional identity overrides. Nil fields are left unchanged.
type Identity struct {
	Host    *string
	Project *string
	Author  *string
	Email   *string
}

// IsZero reports whether no field is set.
func (id Identity) IsZero() bool {
	return id.Host == nil && id.Project == nil && id.Author == nil && id.Email == nil
}

// Apply copies the set fields onto rc.
func (id Identity) Apply(rc *RunControl) {
	if id.Host != nil {
		rc.HostIdentity = *id.Host
	}
	if id.Project != nil {
		rc.ProjectIdentity = *id.Project
	}
	if id.Author != nil {
		rc.AuthorName = *id.Author
	}
	if id.Email != nil {
		rc.AuthorEmail = *id.Email
	}
}

// Configure asks for the four identity fields, offering the current values as
// defaults. The topic set is preserved; the caller persists the result.
func (rc *RunControl) Configure(a prompt.Asker) error {
	questions := []struct {
		label string
		field *string
	}{
		{"GitHub user (host)", &rc.HostIdentity},
		{"Project name", &rc.ProjectIdentity},
		{"Author name", &rc.AuthorName},
		{"Author email", &rc.AuthorEmail},
	}

	for _, q := range questions {
		answer, err := a.Ask(q.label, *q.field)
		if err != nil {
			return err
		}
		*q.field = answer
	}
	return nil
}
