package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/adapters/storage"
	"camp-signup-api/internal/config"
	"camp-signup-api/internal/database"
	"camp-signup-api/internal/repositories/sqlite"
	"camp-signup-api/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	var (
		dbPath     = flag.String("db", cfg.Database.Path, "Database file path")
		action     = flag.String("action", "up", "Action: up, down, status, validate, seed, export, import")
		storeDir   = flag.String("store", cfg.Snapshot.Dir, "Snapshot store directory")
		out        = flag.String("out", "", "Snapshot key to write (export), defaults to camp_<timestamp>.json")
		in         = flag.String("in", "", "Snapshot key to read (import)")
		noBackup   = flag.Bool("no-backup", false, "Skip the backup snapshot before import")
		campers    = flag.Int("campers", snapshot.DefaultSampleOptions().Campers, "Number of campers to seed")
		activities = flag.Int("activities", snapshot.DefaultSampleOptions().Activities, "Number of activities to seed")
		seed       = flag.Int64("seed", 0, "Random seed for reproducible sample data (0 = random)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := config.NewLogger(cfg.Log)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	dbConfig := cfg.Database
	dbConfig.Path = *dbPath
	absDBPath, err := dbConfig.GetAbsolutePath()
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	logger.WithFields(logrus.Fields{
		"db_path": absDBPath,
		"action":  *action,
	}).Info("Starting migration tool")

	ctx := context.Background()
	migrations := database.NewMigrationManager(absDBPath, logger)

	switch *action {
	case "up":
		if err := migrations.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := migrations.RollbackMigration(); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "status":
		if err := showMigrationStatus(migrations); err != nil {
			logger.WithError(err).Fatal("Failed to get migration status")
		}
	case "validate":
		if err := validateSchema(ctx, absDBPath, logger); err != nil {
			logger.WithError(err).Fatal("Schema validation failed")
		}
	case "seed":
		opts := snapshot.SampleOptions{Campers: *campers, Activities: *activities, Seed: *seed}
		if err := seedDatabase(ctx, absDBPath, opts, logger); err != nil {
			logger.WithError(err).Fatal("Seeding failed")
		}
	case "export":
		key := *out
		if key == "" {
			key = fmt.Sprintf("camp_%s.json", time.Now().UTC().Format("20060102_150405"))
		}
		if err := exportSnapshot(ctx, absDBPath, cfg.Snapshot.StorageType, *storeDir, key, logger); err != nil {
			logger.WithError(err).Fatal("Export failed")
		}
	case "import":
		if *in == "" {
			logger.Fatal("The -in flag is required for import")
		}
		if err := importSnapshot(ctx, absDBPath, cfg.Snapshot.StorageType, *storeDir, *in, !*noBackup, logger); err != nil {
			logger.WithError(err).Fatal("Import failed")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status, validate, seed, export, import")
	}

	logger.Info("Migration tool completed successfully")
}

func showMigrationStatus(migrations *database.MigrationManager) error {
	status, err := migrations.GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)
	fmt.Printf("  Timestamp: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))

	return nil
}

func connect(ctx context.Context, dbPath string, migrate bool, logger *logrus.Logger) (*database.ConnectionManager, error) {
	connConfig := database.DefaultConnectionConfig()
	connConfig.DatabasePath = dbPath
	connConfig.AutoMigrate = migrate
	connConfig.Logger = logger

	cm := database.NewConnectionManager(connConfig)
	if err := cm.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cm, nil
}

func validateSchema(ctx context.Context, dbPath string, logger *logrus.Logger) error {
	cm, err := connect(ctx, dbPath, false, logger)
	if err != nil {
		return err
	}
	defer cm.Close()

	if err := database.ValidateSchema(cm.GetDB(), logger); err != nil {
		return err
	}

	fmt.Println("Schema validation passed successfully")
	return nil
}

func newSnapshotManager(ctx context.Context, dbPath, storageType, storeDir string, logger *logrus.Logger) (*snapshot.Manager, func(), error) {
	cm, err := connect(ctx, dbPath, true, logger)
	if err != nil {
		return nil, nil, err
	}

	var store storage.FileStorage
	if storeDir != "" {
		store, err = storage.CreateFromConfig(&storage.StorageConfig{Type: storageType, BasePath: storeDir})
		if err != nil {
			cm.Close()
			return nil, nil, err
		}
	}

	repos := sqlite.NewSQLiteRepositoryManager(cm.GetDB(), logger)
	cleanup := func() {
		if store != nil {
			store.Close()
		}
		cm.Close()
	}

	return snapshot.NewManager(repos, store, logger), cleanup, nil
}

func seedDatabase(ctx context.Context, dbPath string, opts snapshot.SampleOptions, logger *logrus.Logger) error {
	mgr, cleanup, err := newSnapshotManager(ctx, dbPath, "", "", logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := mgr.Import(ctx, snapshot.Sample(opts), snapshot.ImportOptions{})
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d campers, %d activities and %d signups\n", result.Campers, result.Activities, result.Signups)
	return nil
}

func exportSnapshot(ctx context.Context, dbPath, storageType, storeDir, key string, logger *logrus.Logger) error {
	mgr, cleanup, err := newSnapshotManager(ctx, dbPath, storageType, storeDir, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := mgr.Save(ctx, key)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d campers, %d activities and %d signups to %s\n",
		len(snap.Campers), len(snap.Activities), len(snap.Signups), filepath.Join(storeDir, key))
	return nil
}

func importSnapshot(ctx context.Context, dbPath, storageType, storeDir, key string, backup bool, logger *logrus.Logger) error {
	mgr, cleanup, err := newSnapshotManager(ctx, dbPath, storageType, storeDir, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := mgr.Load(ctx, key)
	if err != nil {
		return err
	}

	result, err := mgr.Import(ctx, snap, snapshot.ImportOptions{Backup: backup})
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d campers, %d activities and %d signups\n", result.Campers, result.Activities, result.Signups)
	if result.BackupKey != "" {
		fmt.Printf("  Backup: %s\n", filepath.Join(storeDir, result.BackupKey))
	}
	for _, warning := range result.Warnings {
		fmt.Printf("  Warning: %s\n", warning)
	}
	return nil
}
