package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/2beens/healthtracker/internal/telemetry/metrics"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	dateLayout     = "2006-01-02"
)

var ErrNothingToUpload = errors.New("sheet file is empty")

var sheetMimeTypes = map[string]string{
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DriveBackup keeps dated copies of the measurements sheet in one Google Drive folder.
type DriveBackup struct {
	service        *drive.Service
	folderName     string
	folderId       string
	shareWith      string
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

// NewDriveBackup connects to Drive and finds the backups folder, creating it if missing.
// shareWith, when set, gets reader access to the folder and every uploaded copy.
func NewDriveBackup(
	ctx context.Context,
	folderName string,
	shareWith string,
	metricsManager *metrics.Manager,
	opts ...option.ClientOption,
) (*DriveBackup, error) {
	if folderName == "" {
		return nil, errors.New("backups folder name not set")
	}

	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	b := &DriveBackup{
		service:        driveService,
		folderName:     folderName,
		shareWith:      shareWith,
		metricsManager: metricsManager,
		nowFunc:        time.Now,
	}

	if err := b.ensureFolder(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *DriveBackup) FolderId() string {
	return b.folderId
}

func (b *DriveBackup) ensureFolder(ctx context.Context) error {
	query := fmt.Sprintf(
		"mimeType = '%s' and trashed = false and name = '%s'",
		folderMimeType, escapeQuery(b.folderName),
	)
	found, err := b.service.Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve backups folder: %w", err)
	}

	switch len(found.Files) {
	case 0:
		log.Printf("backups folder [%s] not found, creating ...", b.folderName)
	case 1:
		b.folderId = found.Files[0].Id
		log.Debugf("backups folder found, %s: %s", b.folderName, b.folderId)
		return nil
	default:
		b.folderId = found.Files[0].Id
		log.Warnf("found %d backups folders named [%s], will take the first one: %s", len(found.Files), b.folderName, b.folderId)
		return nil
	}

	folder, err := b.service.Files.
		Create(&drive.File{
			Name:     b.folderName,
			MimeType: folderMimeType,
		}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("create backups folder: %w", err)
	}
	b.folderId = folder.Id

	if err := b.share(ctx, folder.Id); err != nil {
		return fmt.Errorf("share backups folder: %w", err)
	}

	log.Printf("new backups folder created: %s", b.folderId)
	return nil
}

// Upload stores a copy of the sheet at path, named after the file and the current date.
// Same day uploads get a numeric suffix.
func (b *DriveBackup) Upload(ctx context.Context, path string) (_ *drive.File, err error) {
	ctx, span := tracing.GlobalSheetBackupTracer.Start(ctx, "driveBackup.upload")
	span.SetAttributes(attribute.String("sheet", filepath.Base(path)))
	start := b.nowFunc()
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		if err == nil && b.metricsManager != nil {
			b.metricsManager.HistSheetBackupDuration.Observe(b.nowFunc().Sub(start).Seconds())
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat sheet: %w", err)
	}
	if info.Size() == 0 {
		return nil, ErrNothingToUpload
	}

	existing, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	existingNames := make([]string, 0, len(existing))
	for _, f := range existing {
		existingNames = append(existingNames, f.Name)
	}

	name := BackupName(path, start, existingNames)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	fileMeta := &drive.File{
		Name:     name,
		MimeType: sheetMimeType(path),
		Parents:  []string{b.folderId},
	}
	created, err := b.service.Files.
		Create(fileMeta).
		Fields("id, name, createdTime").
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: create backup file: %w", name, err)
	}

	if err := b.share(ctx, created.Id); err != nil {
		return created, fmt.Errorf("%s: share backup file: %w", name, err)
	}

	log.Printf("sheet backup [%s] saved: %s", name, created.Id)
	return created, nil
}

// List returns the backup copies in the folder, newest first.
func (b *DriveBackup) List(ctx context.Context) ([]*drive.File, error) {
	query := fmt.Sprintf(
		"'%s' in parents and mimeType != '%s' and trashed = false",
		b.folderId, folderMimeType,
	)

	var files []*drive.File
	err := b.service.Files.List().
		Q(query).
		Fields("nextPageToken, files(id, name, createdTime)").
		Pages(ctx, func(page *drive.FileList) error {
			files = append(files, page.Files...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list backup files: %w", err)
	}

	slices.SortStableFunc(files, func(a, b *drive.File) int {
		return strings.Compare(createdKey(b), createdKey(a))
	})
	return files, nil
}

// Prune deletes all but the newest keep copies and returns how many were removed.
func (b *DriveBackup) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be positive, got %d", keep)
	}

	files, err := b.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(files) <= keep {
		return 0, nil
	}

	removed := 0
	for _, f := range files[keep:] {
		if err := b.service.Files.Delete(f.Id).Context(ctx).Do(); err != nil {
			return removed, fmt.Errorf("delete %s (%s): %w", f.Name, f.Id, err)
		}
		log.Debugf("old backup removed: %s (%s)", f.Name, f.Id)
		removed++
	}

	return removed, nil
}

func (b *DriveBackup) share(ctx context.Context, fileId string) error {
	if b.shareWith == "" {
		return nil
	}

	permission, err := b.service.Permissions.
		Create(fileId, &drive.Permission{
			EmailAddress: b.shareWith,
			Type:         "user",
			Role:         "reader",
		}).
		Context(ctx).
		Do()
	if err != nil {
		return err
	}

	log.Tracef("permission %s created for %s", permission.Id, fileId)
	return nil
}

// BackupName builds "<stem>-<yyyy-mm-dd><ext>", adding _2, _3 ... until it is not taken.
func BackupName(path string, at time.Time, taken []string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	base := fmt.Sprintf("%s-%s", stem, at.Format(dateLayout))

	name := base + ext
	for counter := 2; slices.Contains(taken, name); counter++ {
		name = fmt.Sprintf("%s_%d%s", base, counter, ext)
	}
	return name
}

func sheetMimeType(path string) string {
	if mt, ok := sheetMimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return "application/octet-stream"
}

// createdTime is RFC 3339 in UTC, so string order is time order
func createdKey(f *drive.File) string {
	return f.CreatedTime
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
