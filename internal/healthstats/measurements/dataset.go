package measurements

import (
	"context"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Store interface {
	Load(ctx context.Context) []Measurement
	Persist(ctx context.Context, all []Measurement) error
}

// versionedStore is a Store that reports when its content changed and surfaces
// read errors, so an unreadable sheet never replaces the rows in memory.
type versionedStore interface {
	Store
	Stamp() (Stamp, error)
	Read(ctx context.Context) ([]Measurement, error)
}

// Dataset is the in-memory measurement set.
// Rows appended after the last successful persist are pending, they are
// kept in memory until a persist succeeds.
type Dataset struct {
	mutex     sync.RWMutex
	store     Store
	rows      []Measurement
	persisted int
	// version of the file the persisted rows came from, when the store is versioned
	stamp   Stamp
	stamped bool
}

func NewDataset(store Store) *Dataset {
	return &Dataset{
		store: store,
	}
}

// Load replaces the persisted rows with the store content. Pending rows are kept.
func (d *Dataset) Load(ctx context.Context) {
	vs, ok := d.store.(versionedStore)
	if !ok {
		loaded := d.store.Load(ctx)
		d.mutex.Lock()
		defer d.mutex.Unlock()
		d.replacePersisted(loaded)
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if err := d.reload(ctx, vs, true); err != nil {
		log.Warnf("load measurements: %s", err)
	}
}

// Refresh reloads the persisted rows when the sheet changed since the last load or
// persist. On error the rows in memory are left as they are.
func (d *Dataset) Refresh(ctx context.Context) error {
	vs, ok := d.store.(versionedStore)
	if !ok {
		return nil
	}

	stamp, err := vs.Stamp()
	if err != nil {
		return err
	}
	d.mutex.RLock()
	current := d.stamped && d.stamp.Same(stamp)
	d.mutex.RUnlock()
	if current {
		return nil
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.reload(ctx, vs, false)
}

// reload must be called with the write lock held.
func (d *Dataset) reload(ctx context.Context, vs versionedStore, force bool) error {
	// stamp taken before reading, a write racing the read is picked up next time
	stamp, err := vs.Stamp()
	if err != nil {
		return err
	}
	if !force && d.stamped && d.stamp.Same(stamp) {
		return nil
	}

	loaded, err := vs.Read(ctx)
	if err != nil {
		d.stamped = false
		return err
	}
	d.replacePersisted(loaded)
	d.stamp, d.stamped = stamp, true
	return nil
}

func (d *Dataset) replacePersisted(loaded []Measurement) {
	pending := d.rows[d.persisted:]
	rows := make([]Measurement, 0, len(loaded)+len(pending))
	rows = append(rows, loaded...)
	rows = append(rows, pending...)
	d.rows = rows
	d.persisted = len(loaded)
}

func (d *Dataset) All() []Measurement {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return slices.Clone(d.rows)
}

func (d *Dataset) Len() int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return len(d.rows)
}

func (d *Dataset) Append(m Measurement) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.rows = append(d.rows, m)
}

// Persist rewrites the store with all rows. Writers are serialized by the dataset lock.
// Rows written to the sheet by another program since the last load are merged in first,
// a sheet that cannot be read is not overwritten.
func (d *Dataset) Persist(ctx context.Context) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	vs, versioned := d.store.(versionedStore)
	if versioned {
		if err := d.reload(ctx, vs, false); err != nil {
			return err
		}
	}

	if err := d.store.Persist(ctx, d.rows); err != nil {
		return err
	}
	d.persisted = len(d.rows)

	if versioned {
		stamp, err := vs.Stamp()
		d.stamp, d.stamped = stamp, err == nil
	}
	return nil
}

func (d *Dataset) Pending() int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return len(d.rows) - d.persisted
}

func (d *Dataset) Persons() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return PersonsOf(d.rows)
}
