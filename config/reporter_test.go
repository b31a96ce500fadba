package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()

	rpt, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "input.yaml")
	if err := os.WriteFile(stored, []byte("a: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	rpt.Store("input/input.yaml", stored)
	rpt.Store("missing", filepath.Join(dir, "absent"))
	rpt.StoreData("output.css", []byte("a{b:c;}"))
	rpt.StoreData("output.css", []byte("a{b:d;}"))

	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	arc, err := zip.OpenReader(rpt.Name())
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer arc.Close()

	files := make(map[string]string)
	for _, f := range arc.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(r)
		r.Close()
		files[f.Name] = string(data)
	}

	if _, ok := files["MANIFEST"]; !ok {
		t.Error("MANIFEST is missing")
	}
	if files["input/input.yaml"] != "a: 1\n" {
		t.Errorf("stored file = %q", files["input/input.yaml"])
	}
	if files["output.css"] != "a{b:c;}" {
		t.Errorf("stored data = %q", files["output.css"])
	}
	if _, ok := files["missing"]; ok {
		t.Error("absent file should be skipped")
	}
	// second copy of output.css is versioned: MANIFEST, input, output.css and its version
	if len(files) != 4 {
		t.Errorf("archive has %d files, want 4", len(files))
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/one")
	r.Store("a", "/tmp/one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting store")
		}
	}()
	r.Store("a", "/tmp/two")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report should have no name")
	}
	r.Store("a", "b")
	r.StoreData("a", nil)
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
