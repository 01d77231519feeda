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

package models

import "time"

// GazetteEntry is one row of the public record index. The rendered
// announcement document lives in the blob store under DocKey. Entries
// are append-only: no update or delete paths exist anywhere.
type GazetteEntry struct {
	ID        uint   `gorm:"primarykey"`
	EntryType string `gorm:"index;size:32;not null"`
	Title     string `gorm:"size:200;not null"`
	Body      string `gorm:"size:4000;not null"`
	Reference string `gorm:"index;size:64;not null"`
	DocKey    string `gorm:"size:36;not null"`
	CreatedAt time.Time
}

// TableName returns the table name
func (GazetteEntry) TableName() string {
	return "gazette_entry"
}
