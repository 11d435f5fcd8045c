// Package main provides a performance benchmarking tool for the gamecache
// snapshot pipeline. It measures indexing and compression times across
// different collection sizes, running each test multiple times, treating the
// first run as cold and averaging the rest as warm, generating CSV output
// for performance analysis and documentation.
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to write snapshot artifacts into
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/EmilStenstrom/gamecache/internal/indexer"
	"github.com/EmilStenstrom/gamecache/schema"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Stage    string
	Games    int
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir         string
	Runs            int
	CollectionSizes []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:         os.Args[1],
		Runs:            4,
		CollectionSizes: []int{100, 1000, 10000},
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// syntheticCollection builds a deterministic collection of the given size.
func syntheticCollection(size int) ([]schema.Game, []schema.Expansion) {
	games := make([]schema.Game, 0, size)
	expansions := make([]schema.Expansion, 0, size/10)
	for i := range size {
		games = append(games, schema.Game{
			ID:            int64(i + 1),
			Name:          fmt.Sprintf("Game %d", i+1),
			YearPublished: 1990 + i%35,
			MinPlayers:    1 + i%3,
			MaxPlayers:    2 + i%5,
			PlayingTime:   30 + i%120,
			Rating:        float64(i%100) / 10.0,
			NumPlays:      i % 40,
			Image:         fmt.Sprintf("https://example.com/images/%d.jpg", i+1),
			Thumbnail:     fmt.Sprintf("https://example.com/thumbs/%d.jpg", i+1),
		})
		if i%10 == 0 {
			expansions = append(expansions, schema.Expansion{
				ID:            int64(1_000_000 + i),
				Name:          fmt.Sprintf("Expansion %d", i+1),
				YearPublished: 1995 + i%30,
			})
		}
	}
	return games, expansions
}

// runBenchmarks executes indexing and compression benchmarks for every
// configured collection size.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult
	idx := indexer.NewSnapshotIndexer()
	ctx := context.Background()

	fmt.Printf("Starting benchmark: sizes %v, %d runs each\n", config.CollectionSizes, config.Runs)

	for _, size := range config.CollectionSizes {
		fmt.Printf("Benchmarking collection of %d games\n", size)
		games, expansions := syntheticCollection(size)
		dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%d.sqlite", size))
		assetPath := dbPath + ".gz"

		indexTimes := make([]float64, 0, config.Runs)
		compressTimes := make([]float64, 0, config.Runs)
		for range config.Runs {
			start := time.Now()
			if err := idx.Index(ctx, dbPath, games, expansions); err != nil {
				return nil, fmt.Errorf("index %d games: %w", size, err)
			}
			indexTimes = append(indexTimes, time.Since(start).Seconds())

			start = time.Now()
			if err := idx.Compress(dbPath, assetPath); err != nil {
				return nil, fmt.Errorf("compress %d games: %w", size, err)
			}
			compressTimes = append(compressTimes, time.Since(start).Seconds())
		}
		_ = os.Remove(dbPath)
		_ = os.Remove(assetPath)

		results = append(results, summarize("index", size, indexTimes))
		results = append(results, summarize("compress", size, compressTimes))
	}

	return results, nil
}

// summarize folds per-run timings into a cold time and a warm average.
func summarize(stage string, size int, times []float64) BenchmarkResult {
	cold := times[0]
	var warmAvg float64
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		warmAvg = sum / float64(len(times)-1)
	}

	fmt.Printf("  %s: cold %.3fs, warm average %.3fs\n", stage, cold, warmAvg)
	return BenchmarkResult{
		Stage:    stage,
		Games:    size,
		ColdTime: fmt.Sprintf("%.3fs", cold),
		WarmTime: fmt.Sprintf("%.3fs", warmAvg),
	}
}

// saveResults writes the benchmark results to a CSV file.
func saveResults(results []BenchmarkResult) error {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"stage", "games", "cold_time", "warm_time"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{r.Stage, fmt.Sprintf("%d", r.Games), r.ColdTime, r.WarmTime}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// printSummary prints a human-readable summary of all benchmark results.
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark summary:")
	for _, r := range results {
		fmt.Printf("  %-8s %6d games  cold %-8s warm %s\n", r.Stage, r.Games, r.ColdTime, r.WarmTime)
	}
	fmt.Println("Results written to benchmark_results.csv")
}
