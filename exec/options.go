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

	"sigs.k8s.io/yaml"

	"github.com/liwenqi1996/doris/sorting"
)

// Options configures a sort operator. The zero value is not useful;
// start from DefaultSortOptions.
type Options struct {
	// Offset is the number of leading rows to skip before emitting.
	Offset int `json:"offset"`

	// Limit caps emitted rows; -1 disables both top-N pruning and
	// the bounded-result path.
	Limit int `json:"limit"`

	// IsAscOrder and NullsFirst hold one entry per sort key.
	IsAscOrder []bool `json:"is_asc_order"`
	NullsFirst []bool `json:"nulls_first"`

	// Run flush thresholds; zero selects the defaults.
	RunRowThreshold  int `json:"run_row_threshold"`
	RunByteThreshold int `json:"run_byte_threshold"`

	// CompressRuns stores extracted runs as compressed frames and
	// decodes them once when the merge phase begins.
	CompressRuns bool `json:"compress_runs"`
}

// DefaultSortOptions returns an unbounded ascending sort
// configuration with default thresholds.
func DefaultSortOptions() Options {
	return Options{
		Limit:            -1,
		RunRowThreshold:  sorting.DefaultRunRowThreshold,
		RunByteThreshold: sorting.DefaultRunByteThreshold,
	}
}

// ParseOptions reads Options from YAML (or JSON) text. Absent keys
// keep their defaults.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultSortOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing sort options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Marshal renders the options as YAML.
func (o Options) Marshal() ([]byte, error) {
	return yaml.Marshal(o)
}

func (o Options) validate() error {
	if o.Offset < 0 {
		return fmt.Errorf("sort options: negative offset %d", o.Offset)
	}
	if o.Limit < -1 {
		return fmt.Errorf("sort options: limit %d, want -1 or >= 0", o.Limit)
	}
	if len(o.IsAscOrder) != len(o.NullsFirst) {
		return fmt.Errorf("sort options: %d directions but %d nulls placements",
			len(o.IsAscOrder), len(o.NullsFirst))
	}
	return nil
}
