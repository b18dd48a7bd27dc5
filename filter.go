/*
Copyright © 2021 the hydroscreen authors.
This file is part of hydroscreen.

hydroscreen is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hydroscreen is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hydroscreen.  If not, see <http://www.gnu.org/licenses/>.
*/

package hydroscreen

import (
	"errors"
	"log"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidInput is returned by Filter when an input collection is nil
// or contains a feature with no geometry.
var ErrInvalidInput = errors.New("hydroscreen: invalid input collection")

// Options configures a call to Filter.
type Options struct {
	// Predicate is the topological test applied between each filter
	// geometry and each target geometry. The default is Intersects.
	Predicate Predicate

	// Invert selects which side of the partition is kept: when true,
	// features that do NOT match any filter geometry are kept; when
	// false, matching features are kept.
	Invert bool

	// ReturnDiscarded additionally computes the complement of the kept
	// collection.
	ReturnDiscarded bool

	// NewIndex provides the geometry index used to prune candidate
	// pairs. The default is NewRtreeIndex.
	NewIndex func() Index

	// Workers is the number of goroutines evaluating predicates. The
	// default is runtime.GOMAXPROCS(0). The match set is order
	// independent, so the result does not depend on this value.
	Workers int
}

// DefaultOptions returns the options used when Filter is given nil
// options: intersects predicate, keep non-matching features, R-tree
// index.
func DefaultOptions() *Options {
	return &Options{
		Predicate: Intersects,
		Invert:    true,
		NewIndex:  NewRtreeIndex,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Result holds the output of Filter.
type Result struct {
	// Kept holds the target features selected according to
	// Options.Invert, in their original order.
	Kept *Collection

	// Discarded holds the complement of Kept. It is nil unless
	// Options.ReturnDiscarded was set.
	Discarded *Collection

	// Matched holds the sorted IDs of target features that matched the
	// predicate against at least one filter geometry. It always names
	// the literal match set, regardless of Options.Invert: with
	// Invert=true these are the IDs excluded from Kept, with
	// Invert=false they are the IDs of Kept itself.
	Matched []int
}

// Filter partitions the target collection according to whether each
// feature satisfies o.Predicate against at least one geometry in the
// filter collection.
//
// Both collections should be in the same spatial reference; if they are
// not, Filter logs a warning and proceeds, but the result is not
// meaningful. Use CheckSR to surface the mismatch as a hard error.
//
// Neither input is modified, and nothing is cached between calls.
func Filter(target, filter *Collection, o *Options) (*Result, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if target == nil || filter == nil {
		return nil, ErrInvalidInput
	}
	for _, f := range target.Features {
		if f == nil || f.Geom == nil {
			return nil, ErrInvalidInput
		}
	}
	for _, f := range filter.Features {
		if f == nil || f.Geom == nil {
			return nil, ErrInvalidInput
		}
	}
	pred := o.Predicate
	if pred == "" {
		pred = Intersects
	}
	newIndex := o.NewIndex
	if newIndex == nil {
		newIndex = NewRtreeIndex
	}
	nprocs := o.Workers
	if nprocs < 1 {
		nprocs = runtime.GOMAXPROCS(0)
	}

	if err := CheckSR(target, filter); err != nil {
		log.Printf("hydroscreen: %v", err)
	}

	index := newIndex()
	for _, f := range filter.Features {
		index.Insert(f)
	}

	var mu sync.Mutex
	matched := make(map[int]struct{})
	var g errgroup.Group
	for procnum := 0; procnum < nprocs; procnum++ {
		procnum := procnum
		g.Go(func() error {
			for i := procnum; i < len(target.Features); i += nprocs {
				t := target.Features[i]
				for _, cand := range index.SearchIntersect(t.Bounds()) {
					ok, err := pred.match(cand.Geom, t.Geom)
					if err != nil {
						return err
					}
					if ok {
						mu.Lock()
						matched[t.ID] = struct{}{}
						mu.Unlock()
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Result{
		Kept:    target.Subset(matched, !o.Invert),
		Matched: make([]int, 0, len(matched)),
	}
	if o.ReturnDiscarded {
		r.Discarded = target.Subset(matched, o.Invert)
	}
	for id := range matched {
		r.Matched = append(r.Matched, id)
	}
	sort.Ints(r.Matched)
	return r, nil
}
