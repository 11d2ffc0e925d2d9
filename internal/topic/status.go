package topic

import (
	"fmt"
	"os"
	"sort"

	"github.com/leuchtturm-labs/leuchtturm/internal/notebook"
)

// Status describes one topic as seen by the topic set and the filesystem.
type Status struct {
	Name    string `json:"name"`
	Tracked bool   `json:"tracked"`
	OnDisk  bool   `json:"on_disk"`
	Cells   int    `json:"cells"`
	Problem string `json:"problem,omitempty"`
}

// Consistent reports whether the topic set and the filesystem agree.
func (s Status) Consistent() bool {
	return s.Tracked == s.OnDisk && s.Problem == ""
}

// Status reports every tracked topic in collection order, followed by
// untracked directories that hold a same-named notebook, sorted by name.
// Nothing is repaired.
func (m *Manager) Status() ([]Status, error) {
	var out []Status
	seen := make(map[string]bool)

	for _, name := range m.rc.Topics() {
		seen[name] = true
		st := Status{Name: name, Tracked: true}

		onDisk, err := pathExists(m.Dir(name))
		if err != nil {
			return nil, err
		}
		st.OnDisk = onDisk
		if onDisk {
			fillCells(&st, m.Dir(name))
		} else {
			st.Problem = "directory missing"
		}
		out = append(out, st)
	}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", m.root, err)
	}

	var untracked []Status
	for _, e := range entries {
		if !e.IsDir() || seen[e.Name()] {
			continue
		}
		dir := m.Dir(e.Name())
		ok, err := pathExists(notebook.Path(dir))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		st := Status{Name: e.Name(), OnDisk: true, Problem: "not tracked"}
		fillCells(&st, dir)
		untracked = append(untracked, st)
	}
	sort.Slice(untracked, func(i, j int) bool { return untracked[i].Name < untracked[j].Name })

	return append(out, untracked...), nil
}

func fillCells(st *Status, dir string) {
	nb, err := notebook.Read(notebook.Path(dir))
	if err != nil {
		st.Cells = -1
		if st.Problem == "" {
			st.Problem = "notebook unreadable"
		}
		return
	}
	st.Cells = nb.CellCount()
}
