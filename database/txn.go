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

package database

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// Txn wraps a metadata store transaction. The blob store is append-only
// with generated keys, so it does not participate in rollback; gazette
// blob writes happen before the index row commits and an orphaned
// document is harmless.
type Txn struct {
	db        *Database
	metadata  *gorm.DB
	lock      sync.Mutex
	finished  bool
	readWrite bool
	onCommit  []func()
}

func NewTxn(db *Database, readWrite bool) *Txn {
	t := &Txn{db: db, readWrite: readWrite}
	if ms := db.Metadata(); ms != nil {
		t.metadata = ms.Transaction()
	}
	return t
}

func (t *Txn) DB() *Database {
	return t.db
}

// Metadata returns the underlying metadata transaction handle
func (t *Txn) Metadata() *gorm.DB {
	return t.metadata
}

// Do executes the specified function in the context of the transaction.
// Any errors returned will result in the transaction being rolled back
func (t *Txn) Do(fn func(*Txn) error) error {
	if err := fn(t); err != nil {
		if err2 := t.Rollback(); err2 != nil {
			return fmt.Errorf(
				"rollback failed: %w: original error: %w",
				err2,
				err,
			)
		}
		return err
	}
	return t.Commit()
}

// OnCommit registers a function to run after the transaction commits.
// Registered functions are discarded on rollback. Side effects that
// must not outlive a rolled-back transaction, such as event publishes
// and metric updates, belong here
func (t *Txn) OnCommit(fn func()) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.onCommit = append(t.onCommit, fn)
}

// Commit commits the underlying transaction
func (t *Txn) Commit() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return nil
	}
	t.finished = true
	if t.metadata != nil {
		if result := t.metadata.Commit(); result.Error != nil {
			t.onCommit = nil
			return result.Error
		}
	}
	for _, fn := range t.onCommit {
		fn()
	}
	t.onCommit = nil
	return nil
}

// Rollback rolls back the underlying transaction
func (t *Txn) Rollback() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return nil
	}
	t.finished = true
	t.onCommit = nil
	if t.metadata != nil {
		if result := t.metadata.Rollback(); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// Release rolls back a read-only transaction without surfacing an error
func (t *Txn) Release() {
	t.Rollback() //nolint:errcheck
}
