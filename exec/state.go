// Copyright 2024 the doris-go authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package exec

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultBatchSize is the row count delivered per Next call when the
// state does not override it.
const DefaultBatchSize = 4096

// RuntimeState carries the per-query execution context shared by the
// operators of one fragment: the downstream batch size, cooperative
// cancellation, and the query-scoped logger.
//
// Cancellation is a flag polled at operator checkpoints; operators
// never block on it.
type RuntimeState struct {
	queryID   uuid.UUID
	batchSize int
	cancelled atomic.Bool
	log       *logrus.Entry
}

// NewRuntimeState returns a state with a fresh query ID.
// batchSize <= 0 selects DefaultBatchSize.
func NewRuntimeState(batchSize int) *RuntimeState {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	id := uuid.New()
	return &RuntimeState{
		queryID:   id,
		batchSize: batchSize,
		log:       logrus.StandardLogger().WithField("query_id", id),
	}
}

// QueryID returns the query identity.
func (s *RuntimeState) QueryID() uuid.UUID { return s.queryID }

// BatchSize returns the row count the downstream wants per batch.
func (s *RuntimeState) BatchSize() int { return s.batchSize }

// Cancel raises the cancellation flag. Safe to call from any
// goroutine; the operators observe it at their next checkpoint.
func (s *RuntimeState) Cancel() { s.cancelled.Store(true) }

// IsCancelled reports whether cancellation has been requested.
func (s *RuntimeState) IsCancelled() bool { return s.cancelled.Load() }

// CheckQueryState returns ErrCancelled annotated with msg if the
// query has been cancelled, nil otherwise.
func (s *RuntimeState) CheckQueryState(msg string) error {
	if s.IsCancelled() {
		return fmt.Errorf("%w: %s", ErrCancelled, msg)
	}
	return nil
}

// Logger returns the query-scoped structured logger.
func (s *RuntimeState) Logger() *logrus.Entry { return s.log }
