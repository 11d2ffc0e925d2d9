package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"text/tabwriter"

	"github.com/leuchtturm-labs/leuchtturm/internal/config"
	"github.com/leuchtturm-labs/leuchtturm/internal/prompt"
	"github.com/leuchtturm-labs/leuchtturm/internal/readme"
	"github.com/leuchtturm-labs/leuchtturm/internal/runcontrol"
	"github.com/leuchtturm-labs/leuchtturm/internal/topic"
)

// App runs commands against one notebook root.
type App struct {
	Root     string
	Settings config.Settings
	In       io.Reader
	Out      io.Writer
	Logger   *slog.Logger

	// Yes answers every confirmation with yes.
	Yes bool

	// JSON switches List output to JSON.
	JSON bool
}

// Run validates cmd, loads the run control (running the first-run
// configuration when the file is missing) and executes cmd.
func (a *App) Run(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p := prompt.New(a.In, a.Out)
	var confirm prompt.Confirmer = p
	if a.Yes {
		confirm = prompt.Always{}
	}

	rcPath := runcontrol.Path(a.Root)
	rc, err := runcontrol.Load(rcPath)
	switch {
	case errors.Is(err, runcontrol.ErrConfigMissing):
		a.Logger.Warn("no run control found, starting first-run configuration", "path", rcPath)
		rc = runcontrol.Empty()

		var id runcontrol.Identity
		if c, ok := cmd.(Configure); ok {
			id = c.Identity
		}
		if err := a.configure(rc, id, p, rcPath); err != nil {
			return err
		}
		if _, ok := cmd.(Configure); ok {
			return nil
		}
	case err != nil:
		return err
	}

	switch c := cmd.(type) {
	case Configure:
		return a.configure(rc, c.Identity, p, rcPath)
	case Readme:
		return a.readme(rc, confirm)
	case Create:
		return a.manager(rc, confirm).Create(c.Name)
	case Remove:
		return a.manager(rc, confirm).Remove(c.Name)
	case Rename:
		return a.manager(rc, confirm).Rename(c.Old, c.New)
	case List:
		return a.list(rc)
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}

func (a *App) manager(rc *runcontrol.RunControl, confirm prompt.Confirmer) *topic.Manager {
	return topic.NewManager(a.Root, rc, confirm, a.Logger)
}

func (a *App) configure(rc *runcontrol.RunControl, id runcontrol.Identity, asker prompt.Asker, rcPath string) error {
	if id.IsZero() {
		if err := rc.Configure(asker); err != nil {
			return fmt.Errorf("configuring identity: %w", err)
		}
	} else {
		id.Apply(rc)
	}

	if err := rc.Export(rcPath); err != nil {
		return err
	}
	a.Logger.Info("run control saved", "path", rcPath, "project", rc.ProjectIdentity, "author", rc.AuthorName)
	return nil
}

func (a *App) readme(rc *runcontrol.RunControl, confirm prompt.Confirmer) error {
	content, err := readme.Render(a.Root, rc, readme.Options{
		ViewerURL: a.Settings.ViewerURL,
		Glyph:     a.Settings.BadgeGlyph,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(a.Root, readme.FileName)
	written, err := readme.Write(path, content, confirm)
	if err != nil {
		return err
	}
	if written {
		a.Logger.Info("readme written", "path", path, "topics", len(rc.Topics()))
	} else {
		a.Logger.Info("readme left unchanged", "path", path)
	}
	return nil
}

func (a *App) list(rc *runcontrol.RunControl) error {
	statuses, err := a.manager(rc, nil).Status()
	if err != nil {
		return err
	}

	if a.JSON {
		if statuses == nil {
			statuses = []topic.Status{}
		}
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.Out, string(data))
		return err
	}

	if len(statuses) == 0 {
		fmt.Fprintln(a.Out, "No topics yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.Out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tCELLS\tSTATUS")
	for _, st := range statuses {
		cells := fmt.Sprint(st.Cells)
		if !st.OnDisk || st.Cells < 0 {
			cells = "-"
		}
		status := "ok"
		if st.Problem != "" {
			status = st.Problem
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", st.Name, cells, status)
	}
	return w.Flush()
}
