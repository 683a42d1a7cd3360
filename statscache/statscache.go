// Copyright 2024 The CascadeSQL Authors.
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

// Package statscache persists per-table row-count estimates across process
// restarts, so a host doesn't have to recompute them before every Cascades
// run. It implements cost.StatsProvider over a boltdb/bolt file, in the
// teacher's embedded-KV-store style (spec section 4.3's optional stats hook).
package statscache

import (
	"encoding/binary"
	"math"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/cascadesql/cascadesql/cost"
)

var statsBucket = []byte("table_row_counts")

// BoltStats is a cost.StatsProvider backed by a bolt.DB file.
type BoltStats struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the bolt file at path and ensures its
// stats bucket exists.
func Open(path string) (*BoltStats, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "statscache: opening bolt file")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(statsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "statscache: creating bucket")
	}
	return &BoltStats{db: db}, nil
}

// Close releases the underlying bolt file.
func (s *BoltStats) Close() error {
	return s.db.Close()
}

// SetRowCount records table's estimated row count.
func (s *BoltStats) SetRowCount(table string, rows float64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(rows))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(statsBucket).Put([]byte(table), buf)
	})
}

// RowCount implements cost.StatsProvider, returning false if table has no
// recorded estimate.
func (s *BoltStats) RowCount(table string) (float64, bool) {
	var rows float64
	var found bool
	s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(statsBucket).Get([]byte(table))
		if v == nil {
			return nil
		}
		rows = math.Float64frombits(binary.BigEndian.Uint64(v))
		found = true
		return nil
	})
	return rows, found
}

var _ cost.StatsProvider = (*BoltStats)(nil)
