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
	"errors"
)

// Operators surface failures as wrapped sentinels so callers can
// classify them with errors.Is without parsing messages. There is no
// local recovery anywhere in the pipeline: the first error aborts the
// query and Close still runs to release resources.
var (
	// ErrCancelled is returned when cooperative cancellation is
	// observed at a checkpoint.
	ErrCancelled = errors.New("query cancelled")

	// ErrNotSupported is returned by legacy call surfaces an
	// operator does not implement, such as the row-batch Next.
	ErrNotSupported = errors.New("not supported")

	// ErrExpression wraps a failure inside a sort-key projection.
	// It is fatal to the query.
	ErrExpression = errors.New("expression evaluation failed")

	// ErrInternal marks an invariant violation; seeing it is a bug.
	ErrInternal = errors.New("internal error")
)
