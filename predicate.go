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
)

// Predicate is a named topological relationship test between a filter
// geometry and a target geometry.
type Predicate string

// The available predicates. Contains and Within are directional:
// Contains matches when a filter geometry contains the target feature,
// Within when a filter geometry lies within the target feature.
// A match under Contains implies a match under Intersects.
const (
	Intersects Predicate = "intersects"
	Contains   Predicate = "contains"
	Within     Predicate = "within"
)

func (p Predicate) String() string { return string(p) }

// ParsePredicate converts a predicate name to a Predicate.
func ParsePredicate(s string) (Predicate, error) {
	switch Predicate(s) {
	case Intersects, Contains, Within:
		return Predicate(s), nil
	case "":
		return Intersects, nil
	default:
		return "", fmt.Errorf("hydroscreen: invalid predicate %q (must be one of intersects, contains, within)", s)
	}
}

// match reports whether filter geometry f and target geometry t satisfy
// predicate p.
func (p Predicate) match(f, t geom.Geom) (bool, error) {
	switch p {
	case Intersects:
		return intersects(f, t)
	case Contains:
		return within(t, f)
	case Within:
		return within(f, t)
	default:
		return false, fmt.Errorf("hydroscreen: invalid predicate %q", string(p))
	}
}

// intersects reports whether geometries a and b share any location.
// At least one of the two must be polygonal; the other may be polygonal,
// linear, or point-like.
func intersects(a, b geom.Geom) (bool, error) {
	if bp, ok := b.(geom.Polygonal); ok {
		return intersectsPolygonal(a, bp)
	}
	if ap, ok := a.(geom.Polygonal); ok {
		return intersectsPolygonal(b, ap)
	}
	return false, fmt.Errorf("hydroscreen: unsupported geometry combination %T, %T for predicate intersects", a, b)
}

// intersectsPolygonal reports whether geometry g intersects poly.
// Polygonal and linear geometries must overlap poly with positive area
// or length: contact confined to poly's boundary, such as an
// edge-adjacent polygon or a line ending exactly on the edge, does not
// count as intersecting. A point lying on the edge does count,
// following the point-in-polygon convention used for containment.
func intersectsPolygonal(g geom.Geom, poly geom.Polygonal) (bool, error) {
	switch g := g.(type) {
	case geom.Polygonal:
		if g.Intersection(poly).Area() > 0 {
			return true, nil
		}
		// A degenerate zero-area polygon lying inside poly still counts.
		if w, ok := g.(geom.Withiner); ok && w.Within(poly) != geom.Outside {
			return true, nil
		}
		return false, nil
	case geom.Linear:
		if clipped := g.Clip(poly); clipped != nil && clipped.Length() > 0 {
			return true, nil
		}
		return g.Within(poly) != geom.Outside, nil
	case geom.Point, geom.MultiPoint:
		ptsF := g.Points()
		for i := 0; i < g.Len(); i++ {
			if ptsF().Within(poly) != geom.Outside {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("hydroscreen: unsupported geometry type %T for predicate intersects", g)
	}
}

// within reports whether geometry a lies entirely within geometry b.
// Locations on the edge of b count as within, matching the convention
// used for point-in-polygon tests elsewhere in the geometry library.
func within(a, b geom.Geom) (bool, error) {
	bp, ok := b.(geom.Polygonal)
	if !ok {
		return false, fmt.Errorf("hydroscreen: containing geometry must be polygonal, got %T", b)
	}
	aw, ok := a.(geom.Withiner)
	if !ok {
		return false, fmt.Errorf("hydroscreen: unsupported geometry type %T for containment test", a)
	}
	return aw.Within(bp) != geom.Outside, nil
}
