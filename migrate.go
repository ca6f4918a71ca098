package propmigrate

import (
	"io"
	"path/filepath"
	"time"

	"github.com/cqkv/propmigrate/fio"
	"github.com/cqkv/propmigrate/model"
	"github.com/cqkv/propmigrate/sink"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type MigrationResult struct {
	RunID      uuid.UUID
	Slots      uint64
	Records    uint64
	Tombstones uint64
	Dynamic    uint64
	StoreBytes int64
	Duration   time.Duration
}

// Migrate copies every in use property of the legacy store in storeDir into dst.
// The store is opened first, then storeDir is locked for the rest of the pass, so
// storeDir must be writable. dst is committed only when every slot was read,
// otherwise it is discarded.
func Migrate(storeDir string, dst sink.Sink, ops ...Option) (*MigrationResult, error) {
	if dst == nil {
		return nil, ErrNoSink
	}
	opts := newOptions(ops...)

	result := &MigrationResult{RunID: uuid.New()}
	log := opts.logger.WithFields(logrus.Fields{
		"run":   result.RunID.String(),
		"store": storeDir,
	})

	start := time.Now()
	path := filepath.Join(storeDir, model.StoreFileName)
	ioManager, err := opts.ioManagerCreator(path)
	if err != nil {
		return nil, newReadError(ErrStoreUnreadable, err)
	}
	r, err := newReader(ioManager, opts)
	if err != nil {
		_ = ioManager.Close()
		return nil, err
	}
	r.log = log
	defer r.Close()

	lock := fio.NewFlock(storeDir)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, newReadError(ErrStoreUnreadable, errors.Wrapf(err, "lock %s", storeDir))
	}
	if !locked {
		return nil, ErrStoreLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.WithError(err).Warn("unlock store directory")
		}
	}()

	result.StoreBytes = r.StoreSize()
	log.WithFields(logrus.Fields{
		"slots": humanize.Comma(int64(r.SlotCount())),
		"size":  humanize.Bytes(uint64(r.StoreSize())),
	}).Info("migrating legacy property store")

	if err = copyRecords(r, dst); err != nil {
		if discardErr := dst.Discard(); discardErr != nil {
			log.WithError(discardErr).Warn("discard migrated records")
		}
		log.WithError(err).Error("migration failed")
		return nil, err
	}
	if err = dst.Commit(); err != nil {
		log.WithError(err).Error("commit migrated records")
		return nil, errors.Wrap(err, "commit migrated records")
	}

	stats := r.Stats()
	result.Slots = stats.SlotsRead
	result.Records = stats.Records
	result.Tombstones = stats.Tombstones
	result.Dynamic = stats.Dynamic
	result.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"records":    humanize.Comma(int64(result.Records)),
		"tombstones": humanize.Comma(int64(result.Tombstones)),
		"dynamic":    humanize.Comma(int64(result.Dynamic)),
		"took":       result.Duration,
	}).Info("legacy property store migrated")
	return result, nil
}

func copyRecords(r *Reader, dst sink.Sink) error {
	for {
		record, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err = dst.Put(record); err != nil {
			return errors.Wrapf(err, "migrate record %d", record.ID)
		}
	}
}
