package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/tendant/content-kit/pkg/content"
	"github.com/tendant/content-kit/pkg/content/config"
	"github.com/tendant/content-kit/pkg/content/repo/memory"
	"github.com/tendant/content-kit/pkg/content/scan"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		desc, err := config.Description()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Usage: contentscan")
		fmt.Println(desc)
		return
	}

	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.Level(),
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Scan failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	records, err := loadRecords(cfg.RecordsFile)
	if err != nil {
		return err
	}

	repo := memory.New()
	for _, rec := range records {
		if _, err := repo.Put(ctx, rec); err != nil {
			return fmt.Errorf("failed to store record %s: %w", rec.ID, err)
		}
	}

	groups, err := repo.Groups(ctx)
	if err != nil {
		return err
	}
	logger.Info("Records loaded",
		"records", len(groups),
		"versions", len(content.UniqueValues(groups)))
	if _, err := content.SingleValues(groups); err != nil {
		var groupErr *content.GroupError
		if errors.As(err, &groupErr) {
			logger.Debug("Some records have several versions", "record_id", groupErr.Key, "versions", groupErr.Count)
		}
	}

	scanner := scan.New(repo, logger)
	result, err := scanner.Scan(ctx, scan.Options{
		Visibilities: cfg.Visibilities,
		DryRun:       cfg.DryRun,
		StopOnError:  cfg.StopOnError,
		Processor: scan.ProcessorFunc(func(ctx context.Context, rec *content.Record) error {
			if rec.Name == "" {
				return fmt.Errorf("record has no name")
			}
			logger.Info("Record", "id", rec.ID, "name", rec.Name, "version", rec.Version, "visibility", rec.Visibility)
			return nil
		}),
		OnProgress: func(processed, total int64) {
			logger.Debug("Progress", "processed", processed, "total", total)
		},
	})
	if err != nil {
		return err
	}

	logger.Info("Done", "summary", result.Summary())
	return nil
}

func loadRecords(path string) ([]*content.Record, error) {
	if path == "" {
		return demoRecords(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	var records []*content.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records file %s: %w", path, err)
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("records file %s: entry %d: %w", path, i, content.ErrNilRecord)
		}
	}
	return records, nil
}

func demoRecords() []*content.Record {
	guide := uuid.New()
	return []*content.Record{
		{ID: guide, Name: "Getting started", Visibility: content.VisibilityDraft},
		{ID: guide, Name: "Getting started", Visibility: content.VisibilityPublished},
		{Name: "Release notes", Visibility: content.VisibilityPublished},
		{Name: "Old pricing", Visibility: content.VisibilityDeleted},
		{Visibility: content.VisibilityDraft},
	}
}
