// Package main uploads a dated copy of the measurements sheet to Google Drive
// and prunes the oldest copies. Meant to run from cron.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/healthtracker/internal/backup"
	"github.com/2beens/healthtracker/internal/config"
	"github.com/2beens/healthtracker/internal/logging"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	credentialsFile := flag.String("gd-creds", "./drive-credentials.json", "google drive service account credentials json")
	logsPath := flag.String("logs-path", "", "backup logs file path (empty for stdout)")
	keep := flag.Int("keep", 0, "number of newest backups to keep (0 uses drive_backup_keep from config)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall backup timeout")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: true,
		LogLevel:    "info",
		Environment: *env,
		Service:     "healthtracker-backup",
		MaxAgeDays:  90,
	})

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	if *keep <= 0 {
		*keep = cfg.DriveBackupKeep
	}

	credentialsJson, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read drive credentials file: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Printf("starting sheet backup of [%s] ...", cfg.MeasurementsPath)

	driveBackup, err := backup.NewDriveBackup(
		ctx,
		cfg.DriveBackupFolder,
		cfg.DriveShareWith,
		nil,
		option.WithCredentialsJSON(credentialsJson),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		log.Fatalf("failed to create google drive backup: %s", err)
	}

	created, err := driveBackup.Upload(ctx, cfg.MeasurementsPath)
	if err != nil {
		log.Fatalf("backup failed: %s", err)
	}
	log.Printf("backup saved: %s (%s)", created.Name, created.Id)

	removed, err := driveBackup.Prune(ctx, *keep)
	if err != nil {
		log.Errorf("prune old backups: %s", err)
		return
	}
	log.Printf("backup done, %d old copies removed", removed)
}
