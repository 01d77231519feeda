// Copyright 2026 Clawbots Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrDocumentNotFound is returned when a document key has no value
var ErrDocumentNotFound = errors.New("document not found")

// BlobStoreBadger is a Badger-backed store for the immutable gazette
// documents. Keys are uuids assigned at publish time; values are the
// rendered announcement bodies. Nothing ever overwrites or deletes a
// written key.
type BlobStoreBadger struct {
	db         *badger.DB
	logger     *slog.Logger
	dataDir    string
	gcTimer    *time.Timer
	timerMutex sync.Mutex
	closed     bool
	gcWG       sync.WaitGroup
}

// New creates a Badger blob store. Uses an in-memory database if
// dataDir is empty, useful for testing.
func New(
	dataDir string,
	logger *slog.Logger,
) (*BlobStoreBadger, error) {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	var opts badger.Options
	if dataDir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(dataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		blobDir := filepath.Join(dataDir, "blob")
		opts = badger.DefaultOptions(blobDir)
	}
	opts = opts.WithLogger(NewBadgerLogger(logger))
	// The default of 64MB is overkill for gazette documents
	opts = opts.WithValueLogFileSize(16 << 20)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	b := &BlobStoreBadger{
		db:      db,
		logger:  logger,
		dataDir: dataDir,
	}
	b.scheduleGc()
	return b, nil
}

// PutDocument stores a document under the given key
func (b *BlobStoreBadger) PutDocument(key string, data []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// GetDocument retrieves a document by key
func (b *BlobStoreBadger) GetDocument(key string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrDocumentNotFound
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close stops the GC timer and closes the underlying database
func (b *BlobStoreBadger) Close() error {
	b.timerMutex.Lock()
	if b.closed {
		b.timerMutex.Unlock()
		return nil
	}
	b.closed = true
	if b.gcTimer != nil {
		b.gcTimer.Stop()
	}
	b.timerMutex.Unlock()
	b.gcWG.Wait()
	return b.db.Close()
}

func (b *BlobStoreBadger) runGc() {
	b.timerMutex.Lock()
	if b.closed || b.dataDir == "" {
		b.timerMutex.Unlock()
		return
	}
	b.gcWG.Add(1)
	b.timerMutex.Unlock()
	defer b.gcWG.Done()

	// Repeat GC until it reports nothing left to collect
	for {
		if err := b.db.RunValueLogGC(0.5); err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				b.logger.Error(
					"failed badger value log GC",
					"component", "database",
					"error", err,
				)
			}
			break
		}
	}
}

// scheduleGc schedules periodic value log garbage collection
func (b *BlobStoreBadger) scheduleGc() {
	b.timerMutex.Lock()
	defer b.timerMutex.Unlock()
	if b.closed {
		return
	}
	if b.gcTimer != nil {
		b.gcTimer.Stop()
	}
	interval := time.Duration(5) * time.Minute
	f := func() {
		defer b.scheduleGc()
		b.runGc()
	}
	b.gcTimer = time.AfterFunc(interval, f)
}

// BadgerLogger is a wrapper type to give our logger the expected interface
type BadgerLogger struct {
	*slog.Logger
}

func NewBadgerLogger(logger *slog.Logger) *BadgerLogger {
	return &BadgerLogger{Logger: logger}
}

func (b *BadgerLogger) Infof(msg string, args ...any) {
	b.Info(fmt.Sprintf(msg, args...))
}

func (b *BadgerLogger) Warningf(msg string, args ...any) {
	b.Warn(fmt.Sprintf(msg, args...))
}

func (b *BadgerLogger) Debugf(msg string, args ...any) {
	b.Debug(fmt.Sprintf(msg, args...))
}

func (b *BadgerLogger) Errorf(msg string, args ...any) {
	b.Error(fmt.Sprintf(msg, args...))
}

var _ badger.Logger = (*BadgerLogger)(nil)
