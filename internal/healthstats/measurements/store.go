package measurements

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/2beens/healthtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// FileStore reads and rewrites the whole measurement sheet file.
// Rewrites go to a temporary file in the same directory that is then renamed over
// the sheet, so readers see either the old or the new content.
type FileStore struct {
	path  string
	sheet Sheet
	// ability to inject temp file creation and rename (for unit testing locked or full disks)
	CreateTempFunc func(dir, pattern string) (TempFile, error)
	RenameFunc     func(oldPath, newPath string) error
}

// TempFile is the part of *os.File used while rewriting the sheet.
type TempFile interface {
	io.WriteCloser
	Name() string
}

// Stamp identifies one version of the sheet file. The zero Stamp is a missing file.
type Stamp struct {
	ModTime time.Time
	Size    int64
}

func (s Stamp) Same(other Stamp) bool {
	return s.Size == other.Size && s.ModTime.Equal(other.ModTime)
}

func NewFileStore(path string) (*FileStore, error) {
	sheet, err := SheetFor(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{
		path:           path,
		sheet:          sheet,
		CreateTempFunc: createTemp,
		RenameFunc:     os.Rename,
	}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Stamp returns the current version of the sheet file.
func (s *FileStore) Stamp() (Stamp, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stamp{}, nil
		}
		return Stamp{}, resourceErr(err)
	}
	return Stamp{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Read decodes the sheet. A missing file is an empty data set, any other failure is
// ErrResourceLocked or ErrResourceUnavailable.
func (s *FileStore) Read(ctx context.Context) (all []Measurement, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fileStore.read")
	defer func() {
		span.SetAttributes(attribute.Int("rows", len(all)))
		tracing.EndSpanWithErrCheck(span, err)
	}()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("measurement sheet [%s] does not exist yet, starting empty", s.path)
			return nil, nil
		}
		return nil, resourceErr(err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("close measurement sheet: %s", err)
		}
	}()

	all, err = s.sheet.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}

	log.Debugf("read %d measurements from [%s]", len(all), s.path)
	return all, nil
}

// Load never fails, a missing or unreadable sheet is an empty data set.
func (s *FileStore) Load(ctx context.Context) []Measurement {
	all, err := s.Read(ctx)
	if err != nil {
		log.Warnf("load measurements: %s", err)
		return nil
	}
	return all
}

// Persist writes the header and all rows, in the given order.
// A failure at any step leaves the existing sheet untouched.
func (s *FileStore) Persist(ctx context.Context, all []Measurement) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fileStore.persist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("rows", len(all)))

	var buf bytes.Buffer
	if err := s.sheet.Write(&buf, all); err != nil {
		return fmt.Errorf("encode measurements: %w", err)
	}

	tmp, err := s.CreateTempFunc(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp sheet: %w", resourceErr(err))
	}
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				log.Warnf("remove temp sheet [%s]: %s", tmp.Name(), rmErr)
			}
		}
	}()

	if _, err := buf.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp sheet: %w", resourceErr(err))
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp sheet: %w", resourceErr(err))
	}

	if err := s.RenameFunc(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace measurement sheet: %w", resourceErr(err))
	}

	return nil
}

func createTemp(dir, pattern string) (TempFile, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	// CreateTemp uses 0600, the sheet is shared with spreadsheet users
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}
	return f, nil
}

// resourceErr wraps file errors as ErrResourceLocked when another program holds
// the file, as ErrResourceUnavailable otherwise.
func resourceErr(err error) error {
	if isLocked(err) {
		return fmt.Errorf("%w: %w", ErrResourceLocked, err)
	}
	return fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
}

// isLocked reports errors caused by another program holding the file
func isLocked(err error) bool {
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETXTBSY) ||
		errors.Is(err, syscall.EAGAIN)
}
