package synth

import (
	"bytes"
	"fmt"
	"testing"
	"time"
)

func testGeneratorConfig(scenarios string) GeneratorConfig {
	scs, _ := SelectScenarios(scenarios)
	return GeneratorConfig{
		Seed:      42,
		RowCount:  200,
		Window:    Window{Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Days: 30},
		Dists:     DefaultDistributions(),
		Scenarios: scs,
	}
}

// ---------------------------------------------------------------------------
// Configuration errors
// ---------------------------------------------------------------------------

func TestNewGenerator_RejectsNegativeRowCount(t *testing.T) {
	cfg := testGeneratorConfig("none")
	cfg.RowCount = -1
	if _, err := NewGenerator(cfg); err == nil {
		t.Fatal("expected error for negative row count")
	}
}

func TestNewGenerator_RejectsBadRoster(t *testing.T) {
	cfg := testGeneratorConfig("none")
	cfg.RoleCounts = []RoleCount{{RoleNurse, -5}}
	if _, err := NewGenerator(cfg); err == nil {
		t.Fatal("expected error for negative role count")
	}
}

func TestNewGenerator_RejectsBadWeights(t *testing.T) {
	cfg := testGeneratorConfig("none")
	cfg.Dists.ActionWeights = map[Action]float64{
		ActionView: 0, ActionEdit: 0, ActionExport: 0,
	}
	if _, err := NewGenerator(cfg); err == nil {
		t.Fatal("expected error for zero-sum action weights")
	}
}

func TestNewGenerator_RejectsBadSpan(t *testing.T) {
	cfg := testGeneratorConfig("none")
	cfg.Window.Days = -3
	if _, err := NewGenerator(cfg); err == nil {
		t.Fatal("expected error for negative window span")
	}
}

// ---------------------------------------------------------------------------
// Generate
// ---------------------------------------------------------------------------

func TestGenerate_RowCountIsBulkPlusScenarios(t *testing.T) {
	gen, err := NewGenerator(testGeneratorConfig("all"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, result, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scenarioTotal := 0
	for _, n := range result.ScenarioRows {
		scenarioTotal += n
	}
	// 4 single-row scenarios + a 30-row burst.
	if scenarioTotal != 34 {
		t.Errorf("expected 34 scenario rows, got %d", scenarioTotal)
	}
	if result.BulkRows != 200 {
		t.Errorf("expected 200 bulk rows, got %d", result.BulkRows)
	}
	if len(rows) != result.TotalRows || result.TotalRows != 234 {
		t.Errorf("expected 234 total rows, got %d (result %d)", len(rows), result.TotalRows)
	}
}

func TestGenerate_SequentialAccessIDs(t *testing.T) {
	gen, err := NewGenerator(testGeneratorConfig("all"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, _, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, ev := range rows {
		if want := fmt.Sprintf("A%05d", i+1); ev.AccessID != want {
			t.Fatalf("row %d: expected id %s, got %s", i, want, ev.AccessID)
		}
	}
}

func TestGenerate_AllRowsValid(t *testing.T) {
	gen, err := NewGenerator(testGeneratorConfig("all"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, _, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, ev := range rows {
		if err := ev.Validate(); err != nil {
			t.Fatalf("row %s: %v", ev.AccessID, err)
		}
	}
}

func TestGenerate_ScenarioRowsComeAfterBulk(t *testing.T) {
	cfg := testGeneratorConfig("volume-outlier")
	gen, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, result, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalRows != 201 {
		t.Fatalf("expected 201 rows, got %d", result.TotalRows)
	}
	last := rows[len(rows)-1]
	if last.AccessCountPerDay != 500 {
		t.Errorf("expected the injected outlier as the final row, got volume %d", last.AccessCountPerDay)
	}
}

func TestGenerate_DeterministicOutput(t *testing.T) {
	render := func() string {
		gen, err := NewGenerator(testGeneratorConfig("all"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rows, _, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var buf bytes.Buffer
		if err := WriteCSV(&buf, rows); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return buf.String()
	}

	if a, b := render(), render(); a != b {
		t.Fatal("two runs with the same seed and config produced different output")
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	rowsFor := func(seed int64) []AccessEvent {
		cfg := testGeneratorConfig("none")
		cfg.Seed = seed
		gen, err := NewGenerator(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rows, _, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rows
	}

	a, b := rowsFor(1), rowsFor(2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different rows")
	}
}

// ---------------------------------------------------------------------------
// Format selection
// ---------------------------------------------------------------------------

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatCSV {
		t.Errorf("expected empty format to default to csv, got %v (%v)", f, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("expected ndjson, got %v (%v)", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
