package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fafaYAML = `- name: GreenDot
  appearance: {kind: plant, size: 10}
  plant: {growth: 15, range: 30, density: 5, day_active: true, lifespan: 120}
- name: Fafa
  appearance: {kind: creature, size: 36}
  creature:
    eating_cooldown: 10
    starvation_time: %s
    reproduction_cooldown: 60
    maturation_time: 30
    min_offspring: 1
    max_offspring: 3
    speed: 20
    day_active: true
    eats: [GreenDot]
    lifespan: 600
`

func writeSpecies(t *testing.T, name, starvation string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	body := strings.Replace(fafaYAML, "%s", starvation, 1)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ConvertsYAMLToJSON(t *testing.T) {
	path := writeSpecies(t, "species.yaml", "30")
	var out bytes.Buffer
	if err := run([]string{"-format", "json", path}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"name": "Fafa"`) {
		t.Errorf("json output missing Fafa:\n%s", out.String())
	}
}

func TestRun_ClampRepairsOrdering(t *testing.T) {
	path := writeSpecies(t, "species.yml", "5")

	if err := run([]string{path}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected validation error for starvation_time below eating_cooldown")
	}

	outPath := filepath.Join(t.TempDir(), "fixed.yaml")
	if err := run([]string{"-clamp", "-out", outPath, path}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run -clamp: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "starvation_time: 30") {
		t.Errorf("starvation_time not clamped:\n%s", data)
	}
}

func TestRun_Usage(t *testing.T) {
	if err := run(nil, &bytes.Buffer{}); err == nil {
		t.Error("expected usage error without a file argument")
	}
	path := writeSpecies(t, "species.yaml", "30")
	if err := run([]string{"-format", "toml", path}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
