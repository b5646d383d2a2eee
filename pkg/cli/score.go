package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mchmarny/riq/pkg/ifv"
	"github.com/mchmarny/riq/pkg/input"
	urfave "github.com/urfave/cli/v3"
)

func newScoreCmd() *urfave.Command {
	return &urfave.Command{
		Name:      "score",
		Aliases:   []string{"s"},
		Usage:     "Compute the RIQ score of every IFV in a set",
		ArgsUsage: "[FILE]",
		UsageText: `riq score set.json                 # score a JSON set
   riq score --sort set.csv           # rank a CSV set
   cat set.yaml | riq score -i yaml   # read from stdin`,
		Action: cmdScore,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    inputFormatFlag,
				Aliases: []string{"i"},
				Usage:   fmt.Sprintf("Input format [%s] (default: inferred from file extension)", joinFormats()),
			},
			&urfave.BoolFlag{
				Name:  sortFlag,
				Usage: "Rank results by RIQ, highest first",
			},
			&urfave.BoolFlag{
				Name:  detailFlag,
				Usage: "Print the intermediate values (pi, hi, lo, iq) of every score",
			},
			&urfave.IntFlag{
				Name:  workersFlag,
				Usage: "Number of goroutines used to score large sets (default: from config)",
			},
		},
	}
}

func joinFormats() string {
	list := make([]string, len(input.Formats))
	for i, f := range input.Formats {
		list[i] = string(f)
	}
	return strings.Join(list, ", ")
}

func cmdScore(ctx context.Context, cmd *urfave.Command) error {
	cfg := getConfig(ctx).Config
	path := cmd.Args().First()

	var format input.Format
	if f := cmd.String(inputFormatFlag); f != "" {
		var err error
		if format, err = input.ParseFormat(f); err != nil {
			return err
		}
	}

	list, err := input.LoadFile(path, format)
	if err != nil {
		return fmt.Errorf("failed to load ifv set: %w", err)
	}

	log := slog.Default().With("records", len(list))
	if len(list) == 1 {
		log.Warn("single element set, score is undefined")
	}

	w := writer(cmd)

	sorted := cfg.Sort || cmd.Bool(sortFlag)

	if cmd.Bool(detailFlag) {
		details := ifv.Explain(list)
		if c := countNonFinite(detailResults(details)); c > 0 {
			log.Warn("non-finite scores", "count", c)
		}
		if sorted {
			details = rankDetails(details)
		}
		return encode(w, cfg.Format, newDetailViews(details))
	}

	workers := cfg.WorkerCount()
	if cmd.IsSet(workersFlag) {
		workers = cmd.Int(workersFlag)
	}

	results, err := scoreSet(ctx, list, workers, cfg.ParallelThreshold)
	if err != nil {
		return fmt.Errorf("failed to score ifv set: %w", err)
	}

	if c := countNonFinite(results); c > 0 {
		log.Warn("non-finite scores", "count", c)
	}

	if sorted {
		return encode(w, cfg.Format, newRankedViews(ifv.Rank(results)))
	}

	return encode(w, cfg.Format, newResultViews(results))
}

// scoreSet switches to the concurrent scorer for large sets.
func scoreSet(ctx context.Context, list []ifv.IFV, workers, threshold int) ([]ifv.ScoreResult, error) {
	if workers > 1 && len(list) >= threshold {
		slog.Debug("scoring concurrently", "records", len(list), "workers", workers)
		return ifv.ScoreConcurrent(ctx, list, workers)
	}
	slog.Debug("scoring", "records", len(list))
	return ifv.Score(list), nil
}

func countNonFinite(results []ifv.ScoreResult) int {
	c := 0
	for _, r := range results {
		if math.IsNaN(r.RIQ) || math.IsInf(r.RIQ, 0) {
			c++
		}
	}
	return c
}

func detailResults(details []ifv.Breakdown) []ifv.ScoreResult {
	results := make([]ifv.ScoreResult, len(details))
	for i, d := range details {
		results[i] = ifv.ScoreResult{Name: d.Name, RIQ: d.RIQ}
	}
	return results
}

// rankDetails orders the breakdown the same way Rank orders scores.
func rankDetails(details []ifv.Breakdown) []ifv.Breakdown {
	ranked := ifv.Rank(detailResults(details))
	out := make([]ifv.Breakdown, len(ranked))
	for i, r := range ranked {
		out[i] = details[r.Index]
	}
	return out
}
