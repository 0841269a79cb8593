// Copyright 2020-2021 Dolthub, Inc.
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

package sql

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// WarningSink accumulates non-fatal observations made during one Optimize
// call: an unsupported node falling back to default pushdown, a
// non-deterministic conjunct kept in a residual slot, and similar. None of
// these abort optimization; they are surfaced for logging/diagnostics only.
type WarningSink struct {
	mu   sync.Mutex
	errs *multierror.Error
}

// NewWarningSink returns an empty sink.
func NewWarningSink() *WarningSink {
	return &WarningSink{}
}

// Add records a formatted warning.
func (w *WarningSink) Add(format string, args ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errs = multierror.Append(w.errs, fmt.Errorf(format, args...))
}

// Warnings returns the individual warning messages recorded so far.
func (w *WarningSink) Warnings() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.errs == nil {
		return nil
	}
	out := make([]string, len(w.errs.Errors))
	for i, e := range w.errs.Errors {
		out[i] = e.Error()
	}
	return out
}

// Err collapses every recorded warning into a single error, or nil if none
// were recorded. Useful for a single log line summarizing a whole Optimize
// call.
func (w *WarningSink) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.errs == nil {
		return nil
	}
	return w.errs.ErrorOrNil()
}
