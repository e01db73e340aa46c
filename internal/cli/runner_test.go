package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/pantry/internal/config"
	"github.com/idilsaglam/pantry/internal/model"
	"github.com/idilsaglam/pantry/internal/store/jsonstore"
	"github.com/idilsaglam/pantry/internal/ui"
)

var testNow = time.Date(2024, 11, 14, 10, 0, 0, 0, time.UTC)

type harness struct {
	opt      Options
	out, err bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{opt: Options{
		Config: config.Config{
			Dir:       dir,
			DataFile:  filepath.Join(dir, "pantry.json"),
			CredsFile: filepath.Join(dir, "credentials.json"),
			Theme:     "classic",
		},
		Now: func() time.Time { return testNow },
	}}
	ui.Stdout, ui.Stderr = &h.out, &h.err
	t.Cleanup(func() { ui.Stdout, ui.Stderr = os.Stdout, os.Stderr })
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return Run(args, h.opt)
}

func (h *harness) batches(t *testing.T) []model.Batch {
	t.Helper()
	b, err := jsonstore.Load(h.opt.Config.DataFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return b
}

func TestAdd_PersistsToTodaysBatch(t *testing.T) {
	h := newHarness(t)

	if code := h.run("add", "-c", "dairy", "-q", "1 dozen", "-e", "+2", "Free", "range", "eggs"); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, h.err.String())
	}
	if !strings.Contains(h.out.String(), "added") {
		t.Errorf("Expected confirmation, got %q", h.out.String())
	}

	b := h.batches(t)
	if len(b) != 1 || b[0].Date != "2024-11-14" || len(b[0].Items) != 1 {
		t.Fatalf("Unexpected batches %+v", b)
	}
	it := b[0].Items[0]
	if it.Name != "Free range eggs" || it.Quantity != "1 dozen" || it.Category != model.Dairy {
		t.Errorf("Unexpected item %+v", it)
	}
	if it.ExpiresAt == nil || model.DayKey(*it.ExpiresAt) != "2024-11-16" {
		t.Errorf("Unexpected expiration %v", it.ExpiresAt)
	}
}

func TestAdd_Rejections(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no name", []string{"add", "-c", "dairy"}, "name is required"},
		{"blank name", []string{"add", "-c", "dairy", "  "}, "name is required"},
		{"no category", []string{"add", "Eggs"}, "category is required"},
		{"bad category", []string{"add", "-c", "candy", "Eggs"}, "category is required"},
		{"bad date", []string{"add", "-c", "dairy", "-e", "someday", "Eggs"}, "bad date"},
		{"bad flag", []string{"add", "-z", "Eggs"}, "flag provided but not defined"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			if code := h.run(tc.args...); code != 2 {
				t.Errorf("Expected exit 2, got %d", code)
			}
			if !strings.Contains(h.err.String(), tc.wantErr) {
				t.Errorf("Expected %q in stderr, got %q", tc.wantErr, h.err.String())
			}
			if _, err := os.Stat(h.opt.Config.DataFile); !os.IsNotExist(err) {
				t.Errorf("Rejected add must not write the data file")
			}
		})
	}
}

func TestRemove_ByPrefixAndIdempotent(t *testing.T) {
	h := newHarness(t)
	h.run("add", "-c", "fruits", "Apples")
	h.run("add", "-c", "grains", "Bread")

	b := h.batches(t)
	apple := b[0].Items[0]

	if code := h.run("rm", apple.ID[:6]); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, h.err.String())
	}
	if !strings.Contains(h.out.String(), "removed Apples") {
		t.Errorf("Unexpected output %q", h.out.String())
	}
	if code := h.run("rm", apple.ID); code != 0 {
		t.Errorf("Second removal must succeed as a no-op, got %d", code)
	}
	if !strings.Contains(h.out.String(), "nothing to remove") {
		t.Errorf("Unexpected output %q", h.out.String())
	}

	b = h.batches(t)
	if len(b) != 1 || len(b[0].Items) != 1 || b[0].Items[0].Name != "Bread" {
		t.Fatalf("Expected only Bread, got %+v", b)
	}

	h.run("rm", b[0].Items[0].ID)
	if b = h.batches(t); len(b) != 0 {
		t.Errorf("Expected the emptied batch to be pruned, got %+v", b)
	}
}

func TestList_Views(t *testing.T) {
	h := newHarness(t)
	h.run("add", "-c", "dairy", "-e", "tomorrow", "Milk")
	h.run("add", "-c", "grains", "Rice")
	h.run("add", "-c", "dairy", "-e", "+10", "Cheese")

	testCases := []struct {
		args    []string
		want    []string
		notWant []string
	}{
		{[]string{"ls"}, []string{"Today (3)", "Milk", "Expires tomorrow", "No date"}, nil},
		{[]string{"ls", "-view", "category"}, []string{"Dairy (2)", "Grains (1)"}, nil},
		{[]string{"ls", "-view", "expiring", "-days", "3"}, []string{"Milk"}, []string{"Rice", "Cheese"}},
		{[]string{"ls", "-view", "recent"}, []string{"Milk", "Rice", "Cheese"}, nil},
		{[]string{"expiring", "14"}, []string{"Milk", "Cheese", "Expiring within 14 days"}, []string{"Rice"}},
	}
	for _, tc := range testCases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			if code := h.run(tc.args...); code != 0 {
				t.Fatalf("Expected exit 0, got %d: %s", code, h.err.String())
			}
			for _, w := range tc.want {
				if !strings.Contains(h.out.String(), w) {
					t.Errorf("Expected %q in output:\n%s", w, h.out.String())
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(h.out.String(), w) {
					t.Errorf("Did not expect %q in output:\n%s", w, h.out.String())
				}
			}
		})
	}

	if code := h.run("ls", "-view", "sideways"); code != 2 {
		t.Errorf("Expected usage error for unknown view, got %d", code)
	}
}

func TestList_CorruptFile(t *testing.T) {
	h := newHarness(t)
	os.WriteFile(h.opt.Config.DataFile, []byte("{broken"), 0o644)
	if code := h.run("ls"); code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(h.err.String(), "load") {
		t.Errorf("Expected load error, got %q", h.err.String())
	}
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	testCases := [][]string{
		{},
		{"frobnicate"},
		{"rm"},
		{"expiring", "soon"},
		{"auth"},
		{"auth", "set"},
	}
	for _, args := range testCases {
		if code := h.run(args...); code != 2 {
			t.Errorf("Run(%v) = %d, want 2", args, code)
		}
	}
	if code := h.run("help"); code != 0 || !strings.Contains(h.out.String(), "Subcommands") {
		t.Errorf("Expected help output")
	}
}

func TestCategories(t *testing.T) {
	h := newHarness(t)
	if code := h.run("categories"); code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	for _, c := range model.Categories() {
		if !strings.Contains(h.out.String(), c.Label()) {
			t.Errorf("Expected %s in category table", c.Label())
		}
	}
}

func TestAuth(t *testing.T) {
	t.Setenv("PANTRY_TOKEN", "")
	h := newHarness(t)

	h.run("auth", "status")
	if !strings.Contains(h.out.String(), "no token") {
		t.Errorf("Expected no token, got %q", h.out.String())
	}
	if code := h.run("auth", "set", "s3cret"); code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, h.err.String())
	}
	h.run("auth", "status")
	if !strings.Contains(h.out.String(), "source: file") {
		t.Errorf("Expected file token, got %q", h.out.String())
	}
	if code := h.run("auth", "clear"); code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if _, err := os.Stat(h.opt.Config.CredsFile); !os.IsNotExist(err) {
		t.Errorf("Expected credentials removed")
	}
}
