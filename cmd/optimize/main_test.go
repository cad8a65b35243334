package main

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/terrarium/species"
)

func TestBestSoFar_KeepsLowestAndCopies(t *testing.T) {
	b := bestSoFar{fitness: math.Inf(1)}
	vals := []float64{1, 2}
	b.offer(-5, vals)
	b.offer(-3, []float64{9, 9})
	vals[0] = 100

	if b.fitness != -5 {
		t.Errorf("fitness = %v, want -5", b.fitness)
	}
	if b.values[0] != 1 {
		t.Errorf("values aliased the caller's slice: %v", b.values)
	}
}

func TestEvalLog_HeaderAndRows(t *testing.T) {
	params := &ParamVector{Specs: []ParamSpec{{Name: "a"}, {Name: "b"}}}
	path := filepath.Join(t.TempDir(), "log.csv")

	l, err := newEvalLog(path, params)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.write(-12.5, 10, 0.25, []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := l.write(-13, 11, 0.5, []float64{3, 4}); err != nil {
		t.Fatal(err)
	}
	l.close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][4] != "a" || rows[0][5] != "b" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[2][0] != "2" || rows[2][2] != "11.000" {
		t.Errorf("second row = %v", rows[2])
	}
}

func TestWriteBest(t *testing.T) {
	dir := t.TempDir()
	pv := NewParamVector()
	if err := writeBest(searchOptions{outputDir: dir}, pv, pv.DefaultVector()); err != nil {
		t.Fatalf("writeBest: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "best_config.yaml")); err != nil {
		t.Errorf("best_config.yaml: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "best_species.json"))
	if err != nil {
		t.Fatal(err)
	}
	recs, err := species.DecodeJSON(data)
	if err != nil {
		t.Fatalf("best_species.json does not validate: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("got %d species, want 3", len(recs))
	}
}
