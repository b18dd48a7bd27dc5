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
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Index finds features whose bounding boxes intersect a query box. It is
// used to prune candidate pairs before exact predicate evaluation. An
// index built during filtering lives only for that one invocation.
//
// Implementations do not need to be safe for concurrent inserts, but
// SearchIntersect must be safe to call from multiple goroutines once all
// inserts are done.
type Index interface {
	Insert(f *Feature)
	SearchIntersect(b *geom.Bounds) []*Feature
}

type rtreeIndex struct {
	tree *rtree.Rtree
}

// NewRtreeIndex returns an R-tree backed Index. This is the production
// default.
func NewRtreeIndex() Index {
	return &rtreeIndex{tree: rtree.NewTree(25, 50)}
}

func (i *rtreeIndex) Insert(f *Feature) {
	i.tree.Insert(f)
}

func (i *rtreeIndex) SearchIntersect(b *geom.Bounds) []*Feature {
	hits := i.tree.SearchIntersect(b)
	o := make([]*Feature, len(hits))
	for j, h := range hits {
		o[j] = h.(*Feature)
	}
	return o
}

type linearIndex struct {
	features []*Feature
}

// NewLinearIndex returns an Index that scans all inserted features on
// every query. It is correctness-equivalent to the R-tree index and is
// useful as a test oracle; don't use it for large collections.
func NewLinearIndex() Index {
	return &linearIndex{}
}

func (i *linearIndex) Insert(f *Feature) {
	i.features = append(i.features, f)
}

func (i *linearIndex) SearchIntersect(b *geom.Bounds) []*Feature {
	var o []*Feature
	for _, f := range i.features {
		if b.Overlaps(f.Bounds()) {
			o = append(o, f)
		}
	}
	return o
}
