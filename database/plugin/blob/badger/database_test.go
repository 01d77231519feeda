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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRoundTrip(t *testing.T) {
	store, err := New("", nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close() //nolint:errcheck
	})

	doc := []byte("THE CLAWGOV GAZETTE\n\nBill #1 has been enacted.")
	require.NoError(t, store.PutDocument("doc-1", doc))

	fetched, err := store.GetDocument("doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc, fetched)

	_, err = store.GetDocument("doc-2")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}
