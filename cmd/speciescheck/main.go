// Command speciescheck validates a species exchange file and re-emits it
// as JSON or YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/terrarium/species"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("speciescheck_failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("speciescheck", flag.ContinueOnError)
	format := fs.String("format", "", "Output format: json or yaml (empty = same as input)")
	out := fs.String("out", "", "Output file (empty = stdout)")
	clampValues := fs.Bool("clamp", false, "Clamp out-of-range values instead of rejecting them")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: speciescheck [flags] <species.json|species.yaml>")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading species file: %w", err)
	}

	inFormat := formatOf(path)
	records, err := decode(data, inFormat, *clampValues)
	if err != nil {
		return err
	}

	outFormat := *format
	if outFormat == "" {
		outFormat = inFormat
	}
	var encoded []byte
	switch outFormat {
	case "json":
		encoded, err = species.EncodeJSON(records)
	case "yaml":
		encoded, err = species.EncodeYAML(records)
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
	if err != nil {
		return err
	}

	slog.Info("species_valid", "path", path, "species", len(records), "clamped", *clampValues)

	if *out == "" {
		_, err = stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(*out, encoded, 0644); err != nil {
		return fmt.Errorf("writing species file: %w", err)
	}
	return nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// decode parses records in the given format. With clamp set, values are
// forced into range before validation; the YAML parser accepts JSON input.
func decode(data []byte, format string, clamp bool) ([]species.Record, error) {
	if !clamp {
		if format == "yaml" {
			return species.DecodeYAML(data)
		}
		return species.DecodeJSON(data)
	}

	var records []species.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode species: %w", err)
	}
	for i := range records {
		records[i] = species.Clamp(records[i])
	}
	if err := species.ValidateAll(records); err != nil {
		return nil, err
	}
	return records, nil
}
