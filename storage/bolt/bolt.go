/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package bolt persists models, and caches analysis results, in a
// bbolt file.
//
// Models live as JSON in one bucket; each model gets its own results
// bucket keyed by an opaque string the caller builds from the
// question asked (say "accessibility/S0/S2/10").
package bolt

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/Saidis18/model-checker/model"

	bolt "go.etcd.io/bbolt"
)

var (
	modelsBucket = []byte("models")

	// NotFound occurs when a requested model isn't in the store.
	NotFound = errors.New("model not found")
)

type Store struct {
	Debug    bool
	filename string
	db       *bolt.DB
}

func NewStore(filename string) (*Store, error) {
	return &Store{
		filename: filename,
	}, nil
}

func (s *Store) Open() error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("bolt Store."+format, args...)
	}
}

// PutModel stores the model as JSON under the given name,
// overwriting any previous model with that name.  Storing a model
// drops its cached results.
func (s *Store) PutModel(name string, m *model.Model) error {
	s.logf("PutModel %s", name)
	js, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(modelsBucket)
		if err != nil {
			return err
		}
		if err = b.Put([]byte(name), js); err != nil {
			return err
		}
		if tx.Bucket(resultsBucket(name)) != nil {
			return tx.DeleteBucket(resultsBucket(name))
		}
		return nil
	})
}

// GetModel fetches and revalidates the named model.
func (s *Store) GetModel(name string) (*model.Model, error) {
	s.logf("GetModel %s", name)
	var js []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(modelsBucket)
		if b == nil {
			return NotFound
		}
		bs := b.Get([]byte(name))
		if bs == nil {
			return NotFound
		}
		js = make([]byte, len(bs))
		copy(js, bs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var m model.Model
	if err := json.Unmarshal(js, &m); err != nil {
		return nil, err
	}
	// The index is not serialized.
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// RemModel removes the named model and its cached results.
func (s *Store) RemModel(name string) error {
	s.logf("RemModel %s", name)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(modelsBucket)
		if b == nil {
			return NotFound
		}
		if err := b.Delete([]byte(name)); err != nil {
			return err
		}
		if tx.Bucket(resultsBucket(name)) != nil {
			return tx.DeleteBucket(resultsBucket(name))
		}
		return nil
	})
}

// ListModels returns the stored model names in key order.
func (s *Store) ListModels() ([]string, error) {
	names := make([]string, 0, 32)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(modelsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// PutResult caches an analysis answer for the named model.
func (s *Store) PutResult(name, key string, value float64) error {
	s.logf("PutResult %s %s %v", name, key, value)
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(resultsBucket(name))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(strconv.FormatFloat(value, 'g', -1, 64)))
	})
}

// GetResult fetches a cached analysis answer.  The bool reports
// whether the answer was cached.
func (s *Store) GetResult(name, key string) (float64, bool, error) {
	var (
		value float64
		have  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(resultsBucket(name))
		if b == nil {
			return nil
		}
		bs := b.Get([]byte(key))
		if bs == nil {
			return nil
		}
		v, err := strconv.ParseFloat(string(bs), 64)
		if err != nil {
			return err
		}
		value, have = v, true
		return nil
	})
	return value, have, err
}

func resultsBucket(name string) []byte {
	return []byte("results." + name)
}
