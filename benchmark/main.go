// Package main provides a performance benchmarking tool for the acqscore CLI.
// It generates target files of increasing size from the sample targets and
// measures rank times across enrichment sources and worker counts,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - acqscore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated target files and the history database
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/acqscore/internal/source"
	"github.com/huangsam/acqscore/schema"
	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Scenario string
	ColdTime string
	WarmTime string
}

// BenchmarkScenario is one set of rank flags to time.
type BenchmarkScenario struct {
	Name string
	Args []string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir   string
	Timeout   time.Duration
	Runs      int
	Sizes     []int
	Scenarios []BenchmarkScenario
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	historyDB := filepath.Join(workDir, "benchmark_history.db")
	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    4,
		Sizes:   []int{100, 1_000, 10_000, 50_000},
		Scenarios: []BenchmarkScenario{
			{Name: "none-1w", Args: []string{"--source", "none", "--workers", "1"}},
			{Name: "none-8w", Args: []string{"--source", "none", "--workers", "8"}},
			{Name: "stub-8w", Args: []string{"--source", "stub", "--workers", "8"}},
			{Name: "stub-8w-history", Args: []string{"--source", "stub", "--workers", "8", "--history-backend", "sqlite", "--history-db-connect", historyDB}},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	datasets, err := generateDatasets(config)
	if err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, datasets)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the acqscore binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("acqscore"); err != nil {
		return fmt.Errorf("acqscore binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// generateDatasets writes one YAML target file per configured size and returns
// the file paths keyed by dataset name.
func generateDatasets(config BenchmarkConfig) (map[string]string, error) {
	templates := source.SampleCompanies()
	rng := rand.New(rand.NewPCG(42, 7))
	datasets := make(map[string]string, len(config.Sizes))

	for _, size := range config.Sizes {
		companies := make([]schema.CompanyRecord, size)
		for i := range companies {
			companies[i] = varyCompany(templates[i%len(templates)], i, rng)
		}

		data, err := yaml.Marshal(companies)
		if err != nil {
			return nil, err
		}
		name := datasetName(size)
		path := filepath.Join(config.WorkDir, name+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		fmt.Printf("Generated %s with %d targets\n", path, size)
		datasets[name] = path
	}
	return datasets, nil
}

// varyCompany returns a copy of c with a unique name and jittered figures.
func varyCompany(c schema.CompanyRecord, i int, rng *rand.Rand) schema.CompanyRecord {
	jitter := func(v float64) float64 { return v * (0.7 + 0.6*rng.Float64()) }

	c.ID = ""
	c.CompanyName = fmt.Sprintf("%s %05d", c.CompanyName, i)
	c.Revenue = jitter(c.Revenue)
	c.EBITDA = jitter(c.EBITDA)
	c.AskingPrice = jitter(c.AskingPrice)
	if c.OwnerAge > 0 {
		c.OwnerAge = 35 + rng.IntN(40)
	}
	if c.YearsOwned > 0 {
		c.YearsOwned = 1 + rng.IntN(30)
	}
	c.ActivelySelling = rng.IntN(2) == 0
	c.SellerWillStay = rng.IntN(2) == 0
	return c
}

func datasetName(size int) string {
	return fmt.Sprintf("targets-%d", size)
}

// runBenchmarks executes all scenarios across the generated datasets
func runBenchmarks(config BenchmarkConfig, datasets map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %d scenarios, %v timeout, %d runs\n",
		len(config.Sizes), len(config.Scenarios), config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		name := datasetName(size)
		fmt.Printf("Benchmarking %s\n", name)
		for _, scenario := range config.Scenarios {
			results = append(results, runBenchmarkSuite(config, name, datasets[name], scenario))
		}
	}

	return results
}

// runBenchmarkSuite times one scenario on one dataset
func runBenchmarkSuite(config BenchmarkConfig, dataset, path string, scenario BenchmarkScenario) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", scenario.Name, config.Runs)

	args := append([]string{"rank", path, "--output-file", os.DevNull}, scenario.Args...)
	cold, warm := runBenchmark(config, args)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}
	warmTimeStr := "TIMEOUT"
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmTimeStr = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("    Cold time: %s, Warm average: %s\n", coldTimeStr, warmTimeStr)

	return BenchmarkResult{
		Dataset:  dataset,
		Scenario: scenario.Name,
		ColdTime: coldTimeStr,
		WarmTime: warmTimeStr,
	}
}

// runBenchmark executes an acqscore command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("acqscore", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			} else {
				fmt.Printf("    run %d failed: %v\n%s\n", run, cmdErr, strings.TrimSpace(string(output)))
			}
		case <-time.After(config.Timeout):
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("acqscore_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "scenario", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Scenario, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by scenario
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, scenario := range config.Scenarios {
		fmt.Printf("%s:\n", scenario.Name)
		for _, result := range results {
			if result.Scenario == scenario.Name {
				fmt.Printf("  %-16s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
			}
		}
	}
}
