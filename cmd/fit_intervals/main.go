package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"fit-intervals/detect"
	"fit-intervals/report"
	"fit-intervals/session"
	"fit-intervals/trace"
)

func main() {
	app := &cli.App{
		Name:  "fit_intervals",
		Usage: "locate planned workout intervals in recorded FIT power traces and compare them across sessions",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "input `FIT` file; may be repeated",
			},
			&cli.StringFlag{
				Name:    "input-list",
				Aliases: []string{"I"},
				Usage:   "read FIT file names from `FILE`, one per line",
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "write output as CSV instead of plain text",
			},
			&cli.BoolFlag{
				Name:  "tsv",
				Usage: "write output as TSV instead of plain text",
			},
			&cli.StringSliceFlag{
				Name:  "reps",
				Usage: "repetition `SPEC` such as '3x1m' or '-30s'; may be repeated",
			},
			&cli.StringFlag{
				Name:  "picave-definition",
				Usage: "PiCave session definition `FILE`",
			},
			&cli.IntFlag{
				Name:  "effort-threshold",
				Value: 70,
				Usage: "PiCave steps at or above `PCT` %FTP count as efforts",
			},
			&cli.IntFlag{
				Name:  "interval-power",
				Value: 250,
				Usage: "minimum power to find when looking for an interval (`WATTS`)",
			},
			&cli.IntFlag{
				Name:  "interval-duration",
				Value: 10,
				Usage: "contiguous `SECONDS` at or above interval-power that identify an interval",
			},
			&cli.IntFlag{
				Name:  "recovery-duration",
				Value: 10,
				Usage: "search slack around the expected interval start (`SECONDS`)",
			},
			&cli.IntFlag{
				Name:  "recovery-bound",
				Value: 600,
				Usage: "longest recovery the boundary scan will search through (`SECONDS`)",
			},
			&cli.BoolFlag{
				Name:  "split",
				Usage: "report merged back-to-back efforts as separate intervals",
			},
			&cli.StringFlag{
				Name:  "chart",
				Usage: "write a line chart of the power readings to HTML `FILE`",
			},
			&cli.StringFlag{
				Name:  "parquet",
				Usage: "write one row per reported reading to parquet `FILE`",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool("debug"))
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	defn, err := buildSession(c)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(c)
	if err != nil {
		return err
	}
	if c.Bool("csv") && c.Bool("tsv") {
		return fmt.Errorf("--csv and --tsv are mutually exclusive")
	}

	sources := make([]detect.TraceSource, 0, len(inputs))
	for _, path := range inputs {
		readings, err := trace.ReadFITFile(path)
		if err != nil {
			sugar.Errorw("unable to read trace", "file", path, "error", err)
			continue
		}
		sources = append(sources, detect.TraceSource{Name: path, Readings: readings})
	}
	if len(sources) == 0 {
		return fmt.Errorf("unable to read any input files")
	}

	detector := detect.New(detect.Config{
		EffortPowerThreshold:  c.Int("interval-power"),
		EffortDetectionWindow: c.Int("interval-duration"),
		RecoveryDurationSlack: c.Int("recovery-duration"),
		LongestRecoveryBound:  c.Int("recovery-bound"),
		MergeIntervals:        !c.Bool("split"),
	}, sugar)

	files, err := detector.RunBatch(defn, sources)
	if err != nil {
		return err
	}

	plain := !c.Bool("csv") && !c.Bool("tsv")
	tables := report.Build(files, plain)

	switch {
	case c.Bool("csv"):
		err = report.RenderDelimited(os.Stdout, tables, ',')
	case c.Bool("tsv"):
		err = report.RenderDelimited(os.Stdout, tables, '\t')
	default:
		err = report.RenderText(os.Stdout, tables)
	}
	if err != nil {
		return err
	}

	if path := c.String("chart"); path != "" {
		if err := writeChartFile(path, tables.Readings); err != nil {
			return err
		}
	}
	if path := c.String("parquet"); path != "" {
		data, err := report.MarshalParquet(files)
		if err != nil {
			return fmt.Errorf("marshal parquet: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func buildSession(c *cli.Context) (*session.SessionDefinition, error) {
	reps := c.StringSlice("reps")
	picave := c.String("picave-definition")
	switch {
	case len(reps) > 0 && picave != "":
		return nil, fmt.Errorf("--reps and --picave-definition are mutually exclusive")
	case len(reps) > 0:
		return session.ParseReps(reps)
	case picave != "":
		return session.ParsePiCaveFile(picave, c.Int("effort-threshold"))
	default:
		return nil, fmt.Errorf("one of --reps or --picave-definition is required")
	}
}

// collectInputs gathers FIT paths from --input flags and the optional
// --input-list file. List entries are processed after flag entries.
func collectInputs(c *cli.Context) ([]string, error) {
	inputs := append([]string(nil), c.StringSlice("input")...)

	if listPath := c.String("input-list"); listPath != "" {
		data, err := os.ReadFile(listPath)
		if err != nil {
			return nil, fmt.Errorf("read input list: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				inputs = append(inputs, line)
			}
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("one or more input files required")
	}
	return inputs, nil
}

func writeChartFile(path string, readings [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := report.WriteChart(f, readings); err != nil {
		f.Close()
		return fmt.Errorf("write chart: %w", err)
	}
	return f.Close()
}
