package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leuchtturm-labs/leuchtturm/internal/config"
	"github.com/leuchtturm-labs/leuchtturm/internal/logging"
	"github.com/leuchtturm-labs/leuchtturm/internal/readme"
	"github.com/leuchtturm-labs/leuchtturm/internal/runcontrol"
	"github.com/leuchtturm-labs/leuchtturm/internal/topic"
)

func newApp(root, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		Root:     root,
		Settings: config.Defaults(),
		In:       strings.NewReader(input),
		Out:      &out,
		Logger:   logging.Discard(),
	}, &out
}

// initRoot writes a run control so commands skip the first-run flow.
func initRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	rc := &runcontrol.RunControl{
		HostIdentity:    "octocat",
		ProjectIdentity: "notes",
		AuthorName:      "Jin Yeom",
		AuthorEmail:     "jin@example.com",
	}
	if err := rc.Export(runcontrol.Path(root)); err != nil {
		t.Fatal(err)
	}
	return root
}

func loadRC(t *testing.T, root string) *runcontrol.RunControl {
	t.Helper()
	rc, err := runcontrol.Load(runcontrol.Path(root))
	if err != nil {
		t.Fatalf("loading run control: %v", err)
	}
	return rc
}

func TestFirstRunConfiguresBeforeCommand(t *testing.T) {
	root := t.TempDir()
	a, out := newApp(root, "octocat\nnotes\nJin Yeom\njin@example.com\n")

	if err := a.Run(Create{Name: "alpha"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, q := range []string{"GitHub user (host): ", "Project name [LEUCHTTURM]: ", "Author name [Author Name]: ", "Author email [author@email.com]: "} {
		if !strings.Contains(out.String(), q) {
			t.Errorf("first-run prompt missing %q in %q", q, out.String())
		}
	}

	rc := loadRC(t, root)
	if rc.HostIdentity != "octocat" || rc.ProjectIdentity != "notes" || rc.AuthorName != "Jin Yeom" {
		t.Errorf("identity = %+v", rc)
	}
	if diff := cmp.Diff([]string{"alpha"}, rc.Topics()); diff != "" {
		t.Errorf("topics (-want +got):\n%s", diff)
	}
}

func TestConfigureFlagsWithoutPrompt(t *testing.T) {
	root := initRoot(t)
	a, out := newApp(root, "")

	email := "new@example.com"
	if err := a.Run(Configure{Identity: runcontrol.Identity{Email: &email}}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected prompt: %q", out.String())
	}

	rc := loadRC(t, root)
	if rc.AuthorEmail != email || rc.AuthorName != "Jin Yeom" {
		t.Errorf("identity = %+v", rc)
	}
}

func TestConfigurePreservesTopics(t *testing.T) {
	root := initRoot(t)
	a, _ := newApp(root, "")
	if err := a.Run(Create{Name: "alpha"}); err != nil {
		t.Fatal(err)
	}

	a, _ = newApp(root, "\n\nSomeone Else\n\n")
	if err := a.Run(Configure{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	rc := loadRC(t, root)
	if rc.AuthorName != "Someone Else" || rc.AuthorEmail != "jin@example.com" {
		t.Errorf("identity = %+v", rc)
	}
	if !rc.Has("alpha") {
		t.Error("configure dropped the topic set")
	}
}

func TestFirstRunConfigureCommandRunsOnce(t *testing.T) {
	root := t.TempDir()
	a, out := newApp(root, "host\nproj\nname\nmail\n")

	if err := a.Run(Configure{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if n := strings.Count(out.String(), "Author email"); n != 1 {
		t.Errorf("asked for email %d times, want 1", n)
	}
	if rc := loadRC(t, root); rc.AuthorEmail != "mail" {
		t.Errorf("AuthorEmail = %q", rc.AuthorEmail)
	}
}

func TestCorruptRunControl(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(runcontrol.Path(root), []byte(`{"topics": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	a, _ := newApp(root, "")
	err := a.Run(Create{Name: "alpha"})
	if !errors.Is(err, runcontrol.ErrConfigCorrupt) {
		t.Fatalf("Run() error = %v, want ErrConfigCorrupt", err)
	}
	if _, err := os.Stat(filepath.Join(root, "alpha")); !os.IsNotExist(err) {
		t.Error("topic created despite corrupt run control")
	}
}

func TestValidateBeforeDispatch(t *testing.T) {
	root := t.TempDir()
	a, out := newApp(root, "")

	err := a.Run(Rename{Old: "alpha", New: "../escape"})
	if !errors.Is(err, topic.ErrInvalidName) {
		t.Fatalf("Run() error = %v, want ErrInvalidName", err)
	}
	if out.Len() != 0 {
		t.Error("first-run flow started for an invalid command")
	}
	if _, err := os.Stat(runcontrol.Path(root)); !os.IsNotExist(err) {
		t.Error("run control written for an invalid command")
	}
}

func TestLifecycle(t *testing.T) {
	root := initRoot(t)

	a, _ := newApp(root, "")
	for _, name := range []string{"beta", "alpha"} {
		if err := a.Run(Create{Name: name}); err != nil {
			t.Fatalf("Create(%s) error: %v", name, err)
		}
	}

	if err := a.Run(Rename{Old: "beta", New: "deep learning"}); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}

	a, _ = newApp(root, "")
	if err := a.Run(Readme{}); err != nil {
		t.Fatalf("Readme() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, readme.FileName))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	// Topics are rendered in file order, which Export sorts.
	alpha := strings.Index(content, "[alpha]")
	deep := strings.Index(content, "[deep learning](")
	if alpha < 0 || deep < 0 || alpha > deep {
		t.Errorf("unexpected README rows:\n%s", content)
	}
	if !strings.Contains(content, "/deep%20learning/deep%20learning.ipynb) | ★\n") {
		t.Errorf("missing encoded link or badge:\n%s", content)
	}

	// A second run asks before overwriting; declining keeps the file.
	a, out := newApp(root, "n\n")
	if err := a.Run(Readme{}); err != nil {
		t.Fatalf("Readme() error: %v", err)
	}
	if !strings.Contains(out.String(), "README.md already exists. Overwrite?") {
		t.Errorf("no overwrite prompt: %q", out.String())
	}

	a, _ = newApp(root, "y\n")
	if err := a.Run(Remove{Name: "alpha"}); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if diff := cmp.Diff([]string{"deep learning"}, loadRC(t, root).Topics()); diff != "" {
		t.Errorf("topics (-want +got):\n%s", diff)
	}
}

func TestYesSkipsConfirmation(t *testing.T) {
	root := initRoot(t)
	a, _ := newApp(root, "")
	if err := a.Run(Create{Name: "alpha"}); err != nil {
		t.Fatal(err)
	}

	a, out := newApp(root, "")
	a.Yes = true
	if err := a.Run(Remove{Name: "alpha"}); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("prompted despite Yes: %q", out.String())
	}
	if loadRC(t, root).Has("alpha") {
		t.Error("topic still tracked")
	}
}

func TestReadmeUnreadableNotebook(t *testing.T) {
	root := initRoot(t)
	a, _ := newApp(root, "")
	if err := a.Run(Create{Name: "alpha"}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "alpha", "alpha.ipynb"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	err := a.Run(Readme{})
	if !errors.Is(err, readme.ErrNotebookUnreadable) {
		t.Fatalf("Run() error = %v, want ErrNotebookUnreadable", err)
	}
	if _, err := os.Stat(filepath.Join(root, readme.FileName)); !os.IsNotExist(err) {
		t.Error("README written despite unreadable notebook")
	}
}

func TestList(t *testing.T) {
	root := initRoot(t)
	a, _ := newApp(root, "")
	if err := a.Run(Create{Name: "alpha"}); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "stray"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "stray", "stray.ipynb"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("table", func(t *testing.T) {
		a, out := newApp(root, "")
		if err := a.Run(List{}); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header + 2 rows, got:\n%s", out.String())
		}
		if f := strings.Fields(lines[1]); len(f) != 3 || f[0] != "alpha" || f[1] != "2" || f[2] != "ok" {
			t.Errorf("alpha row = %q", lines[1])
		}
		if !strings.HasPrefix(lines[2], "stray") || !strings.Contains(lines[2], "not tracked") {
			t.Errorf("stray row = %q", lines[2])
		}
	})

	t.Run("json", func(t *testing.T) {
		a, out := newApp(root, "")
		a.JSON = true
		if err := a.Run(List{}); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		var got []topic.Status
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out.String())
		}
		if len(got) != 2 || got[0].Name != "alpha" || !got[0].Consistent() || got[1].Cells != -1 {
			t.Errorf("statuses = %+v", got)
		}
	})
}
