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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// Feature is a single shape in a Collection: a geometry, the stable
// identifier it is tracked by, and the attribute values that were read
// alongside it. Attributes are carried through filtering unchanged.
type Feature struct {
	geom.Geom

	// ID is a stable integer identifier. IDs are assigned from row order
	// when a collection is read from a file and are never reassigned.
	ID int

	// Fields holds the attribute values associated with this feature,
	// keyed by column name.
	Fields map[string]string
}

// Collection is an ordered set of features sharing a spatial reference.
type Collection struct {
	Features []*Feature

	// Columns lists the attribute column names in their original order.
	Columns []string

	// SR is the spatial reference the feature coordinates are in, or nil
	// if the source file didn't specify one.
	SR *proj.SR

	// SRDef is the textual definition SR was parsed from (Proj4 or WKT).
	// It is written to the output .prj file.
	SRDef string
}

// Len returns the number of features in c.
func (c *Collection) Len() int {
	return len(c.Features)
}

// Copy returns a deep copy of c, except for the geometries themselves,
// which are never mutated and therefore shared.
func (c *Collection) Copy() *Collection {
	o := &Collection{
		Features: make([]*Feature, len(c.Features)),
		Columns:  append([]string{}, c.Columns...),
		SR:       c.SR,
		SRDef:    c.SRDef,
	}
	for i, f := range c.Features {
		ff := &Feature{Geom: f.Geom, ID: f.ID, Fields: make(map[string]string, len(f.Fields))}
		for k, v := range f.Fields {
			ff.Fields[k] = v
		}
		o.Features[i] = ff
	}
	return o
}

// Reproject transforms the geometries in c to the spatial reference
// defined by srDef (a Proj4 string or WKT definition), returning a new
// collection. c is not modified.
func (c *Collection) Reproject(srDef string) (*Collection, error) {
	if c.SR == nil {
		return nil, fmt.Errorf("hydroscreen: reprojecting: collection has no spatial reference")
	}
	to, err := proj.Parse(srDef)
	if err != nil {
		return nil, fmt.Errorf("hydroscreen: parsing target spatial reference: %v", err)
	}
	ct, err := c.SR.NewTransform(to)
	if err != nil {
		return nil, fmt.Errorf("hydroscreen: creating coordinate transform: %v", err)
	}
	o := &Collection{
		Features: make([]*Feature, len(c.Features)),
		Columns:  append([]string{}, c.Columns...),
		SR:       to,
		SRDef:    srDef,
	}
	for i, f := range c.Features {
		g, err := f.Geom.Transform(ct)
		if err != nil {
			return nil, fmt.Errorf("hydroscreen: reprojecting feature %d: %v", f.ID, err)
		}
		o.Features[i] = &Feature{Geom: g, ID: f.ID, Fields: f.Fields}
	}
	return o, nil
}

// Subset returns the features of c whose IDs are in ids (when include is
// true) or not in ids (when include is false), preserving order. The
// returned collection shares features with c.
func (c *Collection) Subset(ids map[int]struct{}, include bool) *Collection {
	o := &Collection{
		Columns: c.Columns,
		SR:      c.SR,
		SRDef:   c.SRDef,
	}
	for _, f := range c.Features {
		if _, ok := ids[f.ID]; ok == include {
			o.Features = append(o.Features, f)
		}
	}
	return o
}

// Mask returns the features of c that spatially intersect mask,
// preserving order. Geometries are not clipped to the mask boundary.
func (c *Collection) Mask(mask geom.Polygonal) (*Collection, error) {
	o := &Collection{
		Columns: c.Columns,
		SR:      c.SR,
		SRDef:   c.SRDef,
	}
	for _, f := range c.Features {
		in, err := Intersects.match(mask, f.Geom)
		if err != nil {
			return nil, err
		}
		if in {
			o.Features = append(o.Features, f)
		}
	}
	return o, nil
}

// CRSMismatchError is returned by CheckSR when two collections are not in
// the same spatial reference. Topological predicates are only meaningful
// in a common planar frame, so callers should reproject before filtering.
type CRSMismatchError struct {
	A, B string
}

func (e *CRSMismatchError) Error() string {
	return fmt.Sprintf("hydroscreen: collections have mismatched spatial references (%q vs %q); reproject before filtering", e.A, e.B)
}

// CheckSR reports whether target and filter are in the same spatial
// reference. Collections with no spatial reference at all are assumed to
// match anything, since there is nothing to compare.
func CheckSR(target, filter *Collection) error {
	if target == nil || filter == nil || target.SR == nil || filter.SR == nil {
		return nil
	}
	if !target.SR.Equal(filter.SR, 3) {
		return &CRSMismatchError{A: target.SRDef, B: filter.SRDef}
	}
	return nil
}
