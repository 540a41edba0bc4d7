package evolve

import (
	"math"
	"path/filepath"
	"testing"
)

func TestReportRoundTrip(t *testing.T) {
	e, err := New(lineData(math.Sin, -3, 3), nil, 31)
	if err != nil {
		t.Fatal(err)
	}
	e.Step(200)

	path := filepath.Join(t.TempDir(), "runs", "report.json")
	report := e.Report()
	if err := report.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}

	if loaded.BestExpression != report.BestExpression {
		t.Errorf("best expression %q, want %q", loaded.BestExpression, report.BestExpression)
	}
	if loaded.BestFitness != report.BestFitness {
		t.Errorf("best fitness %v, want %v", loaded.BestFitness, report.BestFitness)
	}
	if loaded.Seed != 31 {
		t.Errorf("seed %d, want 31", loaded.Seed)
	}
	if loaded.Generations != 200 {
		t.Errorf("generations %d, want 200", loaded.Generations)
	}
	if loaded.Params != report.Params {
		t.Errorf("params changed in round trip")
	}
	if loaded.Version != ReportVersion {
		t.Errorf("version %q, want %q", loaded.Version, ReportVersion)
	}
}

func TestLoadReportMissingFile(t *testing.T) {
	if _, err := LoadReport(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file accepted")
	}
}
