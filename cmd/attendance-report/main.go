// Command attendance-report renders a JSON attendance snapshot exported by
// the front end into an xlsx workbook for operations staff.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"hospitalcore/internal/config"
	"hospitalcore/internal/report"
	"hospitalcore/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("attendance-report", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML config path")
	inPath := fs.String("in", "", "attendance snapshot JSON file")
	outPath := fs.String("out", "attendance.xlsx", "destination xlsx file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "attendance-report: -in is required")
		return 2
	}

	cfg := config.LoadFromEnv()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "attendance-report: load config: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "attendance-report: logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	records, err := readSnapshot(*inPath)
	if err != nil {
		logger.Error("read snapshot", zap.String("path", *inPath), zap.Error(err))
		return 1
	}

	data, err := report.GenerateAttendanceSheet(records)
	if err != nil {
		logger.Error("render workbook", zap.Error(err))
		return 1
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		logger.Error("write workbook", zap.String("path", *outPath), zap.Error(err))
		return 1
	}

	logger.Info("attendance report written",
		zap.String("path", *outPath),
		zap.Int("records", len(records)),
	)
	return 0
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}

func readSnapshot(path string) ([]domain.StaffAttendance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []domain.StaffAttendance
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
