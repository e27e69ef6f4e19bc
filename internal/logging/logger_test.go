package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dvdenrich/internal/config"
	"dvdenrich/internal/logging"
	"dvdenrich/internal/services"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	var out, errOut bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &out, &errOut)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug message")
	logger.Warn("warn message")
	if !strings.Contains(out.String(), "DEBUG debug message") {
		t.Fatalf("expected debug record on out, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "WARN warn message") {
		t.Fatalf("expected warn record on errOut, got %q", errOut.String())
	}
}

func TestNewFromConfigJSON(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"

	var out bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &out, &out)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("json record")
	if !strings.HasPrefix(out.String(), "{") {
		t.Fatalf("expected JSON output, got %q", out.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &out, ErrorWriter: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(out.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &out, ErrorWriter: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(out.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", out.String())
	}
}

func TestLogFileReceivesEveryLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "filldirectors.log")

	var out, errOut bytes.Buffer
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		Writer:      &out,
		ErrorWriter: &errOut,
		File:        logPath,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("row processed", logging.Int64(logging.FieldRecordKey, 7))
	logger.Error("update failed")
	logger.Debug("filtered out")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{"INFO [7] row processed", "ERROR update failed"} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("log file missing %q, got %q", want, content)
		}
	}
	if strings.Contains(string(content), "filtered out") {
		t.Fatalf("debug record leaked into log file: %q", content)
	}
	if !strings.Contains(out.String(), "row processed") || !strings.Contains(errOut.String(), "update failed") {
		t.Fatalf("streams lost records: out=%q err=%q", out.String(), errOut.String())
	}
}

func TestNewFromConfigAppendsToLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.jsonl")
	if err := os.WriteFile(logPath, []byte("{\"msg\":\"earlier run\"}\n"), 0o644); err != nil {
		t.Fatalf("seed log file: %v", err)
	}
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.File = logPath

	var out bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &out, &out)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("starting run", logging.Duration("sleep", 1500*time.Millisecond))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), content)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record["msg"] != "starting run" || record["sleep"] != "1.5s" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewFailsWhenLogFileCannotBeOpened(t *testing.T) {
	dir := t.TempDir()
	if _, err := logging.New(logging.Options{Format: "console", File: dir}); err == nil {
		t.Fatal("expected error when log file is a directory")
	}
}

func TestConsoleLoggerSplitsStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &out, ErrorWriter: &errOut})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("progress line")
	logger.Warn("warning line")
	logger.Error("failure line")
	logger.Debug("hidden line")

	if got := out.String(); !strings.Contains(got, "INFO progress line") || strings.Contains(got, "warning line") {
		t.Fatalf("unexpected stdout content %q", got)
	}
	got := errOut.String()
	if !strings.Contains(got, "WARN warning line") || !strings.Contains(got, "ERROR failure line") {
		t.Fatalf("unexpected stderr content %q", got)
	}
	if strings.Contains(out.String()+got, "hidden line") {
		t.Fatal("debug record should be filtered at info level")
	}
}

func TestConsoleLoggerPrefixesComponentAndRecordKey(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &out, ErrorWriter: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRecordKey(services.WithRunID(context.Background(), "run-1"), 42)
	component := logging.NewComponentLogger(logger, "enrich")
	logging.WithContext(ctx, component).Info("processing", logging.String("title", "Alien (Director's Cut)"))

	line := out.String()
	if !strings.Contains(line, "INFO enrich: [42] processing") {
		t.Fatalf("missing prefix in %q", line)
	}
	if !strings.Contains(line, `title="Alien (Director's Cut)"`) {
		t.Fatalf("expected quoted title in %q", line)
	}
	if strings.Contains(line, "run-1") {
		t.Fatalf("console output should omit run id, got %q", line)
	}
	if strings.Contains(line, "\033[") {
		t.Fatalf("buffers must not be colorized, got %q", line)
	}
}

func TestJSONLoggerWritesStructuredRecords(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &out, ErrorWriter: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("json message", logging.String("k", "v"), logging.Error(errors.New("boom")))

	var record map[string]any
	if err := json.Unmarshal(out.Bytes(), &record); err != nil {
		t.Fatalf("decode json record %q: %v", out.String(), err)
	}
	if record["msg"] != "json message" || record["level"] != "info" || record["k"] != "v" || record["error"] != "boom" {
		t.Fatalf("unexpected record %#v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %#v", record)
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "invalid", Writer: &out, ErrorWriter: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("dropped")
	logger.Info("kept")
	if strings.Contains(out.String(), "dropped") || !strings.Contains(out.String(), "kept") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-xyz")
	ctx = services.WithRecordKey(ctx, 123)
	ctx = services.WithStep(ctx, "lookup")

	var out bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &out, ErrorWriter: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(out.Bytes(), &record); err != nil {
		t.Fatalf("decode json record: %v", err)
	}
	if record[logging.FieldRunID] != "run-xyz" {
		t.Fatalf("run_id = %v", record[logging.FieldRunID])
	}
	if record[logging.FieldRecordKey] != float64(123) {
		t.Fatalf("dkey = %v", record[logging.FieldRecordKey])
	}
	if record[logging.FieldStep] != "lookup" {
		t.Fatalf("step = %v", record[logging.FieldStep])
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &out, ErrorWriter: &out})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.ErrorWithContext(logger, "lookup failed", "wikipedia_request_failed",
		logging.String(logging.FieldErrorHint, "check network access"))

	var record map[string]any
	if err := json.Unmarshal(out.Bytes(), &record); err != nil {
		t.Fatalf("decode json record: %v", err)
	}
	if record[logging.FieldEventType] != "wikipedia_request_failed" {
		t.Fatalf("event_type = %v", record[logging.FieldEventType])
	}
	if record[logging.FieldErrorHint] != "check network access" {
		t.Fatalf("error_hint = %v", record[logging.FieldErrorHint])
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.WithContext(context.Background(), nil).Info("ignored")
}
