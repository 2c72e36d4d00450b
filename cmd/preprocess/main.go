package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bitbucket.org/platesync/unify_backend/config"
	"bitbucket.org/platesync/unify_backend/unifysync"
	"bitbucket.org/platesync/unify_backend/utils"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath   = flag.String("config", config.EnvDefault("RUN_CONFIG_PATH", "config.json"), "run configuration document")
		toastPath    = flag.String("toast", config.EnvDefault("TOAST_EXPORT_PATH", ""), "toast export document")
		doordashPath = flag.String("doordash", config.EnvDefault("DOORDASH_EXPORT_PATH", ""), "doordash export document")
		squarePath   = flag.String("square", config.EnvDefault("SQUARE_EXPORT_PATH", ""), "square export document")
		outPath      = flag.String("out", config.EnvDefault("SNAPSHOT_OUT_PATH", "snapshot.json"), "snapshot output path")
		allowPartial = flag.Bool("allow-partial", config.EnvBoolDefault("ALLOW_PARTIAL", false), "continue when one platform export is unusable")
	)
	flag.Parse()

	logger := config.GetLogger()

	cfg, err := unifysync.LoadRunConfig(*configPath)
	if err != nil {
		config.LogError(logger, "preprocess", "main", "load run config", nil, err)
		os.Exit(1)
	}

	inputs := unifysync.Inputs{
		Toast:    readFile(logger, *toastPath),
		DoorDash: readFile(logger, *doordashPath),
		Square:   readFile(logger, *squarePath),
	}

	snap, stats, err := unifysync.Run(context.Background(), inputs, cfg, unifysync.Options{
		AllowPartial: *allowPartial,
		Logger:       logger,
	})
	if err != nil {
		config.LogError(logger, "preprocess", "main", "run failed", nil, err)
		os.Exit(1)
	}

	if err := utils.WriteJSONFile(*outPath, snap); err != nil {
		config.LogError(logger, "preprocess", "main", "write snapshot", nil, err)
		os.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"schema_version": snap.SchemaVersion,
		"generated_at":   snap.GeneratedAt,
		"out":            *outPath,
		"locations":      stats.Locations,
		"categories":     stats.Categories,
		"products":       stats.Products,
		"variations":     stats.Variations,
		"aliases":        stats.Aliases,
		"orders":         stats.Orders,
		"items":          stats.Items,
		"payments":       stats.Payments,
		"platforms":      stats.Platforms,
	}).Info("preprocessing run complete")
}

func readFile(logger *logrus.Logger, path string) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithFields(logrus.Fields{"path": path}).Warnf("export file unreadable: %v", err)
		return nil
	}
	return data
}
