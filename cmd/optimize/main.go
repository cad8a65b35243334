package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/species"
)

// searchOptions are the command line settings of one search.
type searchOptions struct {
	configPath string
	outputDir  string
	maxDays    int
	seeds      int
	maxEvals   int
	population int
}

func main() {
	var opts searchOptions
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.IntVar(&opts.maxDays, "max-days", 200, "Maximum simulated days per run")
	flag.IntVar(&opts.seeds, "seeds", 3, "Seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := search(opts); err != nil {
		slog.Error("optimize_failed", "error", err)
		os.Exit(1)
	}
}

// search runs CMA-ES from the configured species values and writes the
// evaluation log and the best configuration into opts.outputDir.
func search(opts searchOptions) error {
	if opts.outputDir == "" {
		return errors.New("-output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	config.MustInit(opts.configPath)
	baseCfg := config.Cfg()

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, opts.maxDays, evalSeeds(opts.seeds), baseCfg)

	evalLog, err := newEvalLog(filepath.Join(opts.outputDir, "optimize_log.csv"), params)
	if err != nil {
		return err
	}
	defer evalLog.close()

	best := bestSoFar{fitness: math.Inf(1)}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			values := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(values)
			best.offer(fitness, values)
			if err := evalLog.write(fitness, evaluator.LastDays(), evaluator.LastQuality(), values); err != nil {
				slog.Warn("eval_log_write_failed", "error", err)
			}
			slog.Info("eval",
				"n", evalLog.rows,
				"of", opts.maxEvals,
				"days", evaluator.LastDays(),
				"quality", evaluator.LastQuality(),
				"fitness", fitness,
				"best", best.fitness,
			)
			return fitness
		},
	}

	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}
	slog.Info("search_start", "params", params.Dim(), "population", popSize,
		"max_evals", opts.maxEvals, "seeds", opts.seeds, "max_days", opts.maxDays)

	start := params.Normalize(params.ExtractFromConfig(baseCfg))
	result, err := optimize.Minimize(problem, start,
		&optimize.Settings{FuncEvaluations: opts.maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	if err != nil {
		slog.Warn("search_stopped", "error", err)
	}
	if best.values == nil && result != nil {
		best.offer(result.F, params.Clamp(params.Denormalize(result.X)))
	}
	if best.values == nil {
		return errors.New("no evaluation completed")
	}

	slog.Info("search_done", "evals", evalLog.rows, "best_fitness", best.fitness)
	for i, spec := range params.Specs {
		slog.Info("best_param", "name", spec.Name, "value", best.values[i])
	}
	return writeBest(opts, params, best.values)
}

// evalSeeds returns n fixed, well-spread seeds.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

// bestSoFar keeps the lowest-fitness parameter values seen.
type bestSoFar struct {
	fitness float64
	values  []float64
}

func (b *bestSoFar) offer(fitness float64, values []float64) {
	if fitness < b.fitness {
		b.fitness = fitness
		b.values = append([]float64(nil), values...)
	}
}

// evalLog appends one row per evaluation. The columns depend on the
// parameter set, so rows are written with encoding/csv.
type evalLog struct {
	file *os.File
	w    *csv.Writer
	rows int
}

func newEvalLog(path string, params *ParamVector) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	l := &evalLog{file: f, w: csv.NewWriter(f)}
	header := []string{"eval", "fitness", "days", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := l.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing eval log header: %w", err)
	}
	return l, nil
}

func (l *evalLog) write(fitness, days, quality float64, values []float64) error {
	l.rows++
	row := []string{
		strconv.Itoa(l.rows),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(days, 'f', 3, 64),
		strconv.FormatFloat(quality, 'f', 4, 64),
	}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

func (l *evalLog) close() {
	l.w.Flush()
	l.file.Close()
}

// writeBest applies values to a fresh copy of the base config and writes it
// as best_config.yaml plus the species alone as best_species.json.
func writeBest(opts searchOptions, params *ParamVector, values []float64) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	if err := params.ApplyToConfig(cfg, values); err != nil {
		return fmt.Errorf("applying best parameters: %w", err)
	}

	configPath := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(configPath); err != nil {
		return err
	}

	data, err := species.EncodeJSON(cfg.Derived.Registry.Records())
	if err != nil {
		return err
	}
	speciesPath := filepath.Join(opts.outputDir, "best_species.json")
	if err := os.WriteFile(speciesPath, data, 0644); err != nil {
		return fmt.Errorf("writing species: %w", err)
	}

	slog.Info("results_written", "config", configPath, "species", speciesPath)
	return nil
}
