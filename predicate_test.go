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
	"testing"

	"github.com/ctessum/geom"
)

func TestParsePredicate(t *testing.T) {
	cases := []struct {
		in      string
		want    Predicate
		wantErr bool
	}{
		{"intersects", Intersects, false},
		{"contains", Contains, false},
		{"within", Within, false},
		{"", Intersects, false},
		{"touches", "", true},
	}
	for _, c := range cases {
		got, err := ParsePredicate(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParsePredicate(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if got != c.want {
			t.Errorf("ParsePredicate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPredicateMatch(t *testing.T) {
	poly := square(0, 0, 4)
	cases := []struct {
		name   string
		pred   Predicate
		f, t   geom.Geom
		want   bool
	}{
		{"line-crosses-polygon", Intersects,
			geom.LineString{geom.Point{X: -1, Y: 2}, geom.Point{X: 5, Y: 2}}, poly, true},
		{"line-misses-polygon", Intersects,
			geom.LineString{geom.Point{X: -1, Y: 5}, geom.Point{X: 5, Y: 5}}, poly, false},
		{"line-inside-polygon", Intersects,
			geom.LineString{geom.Point{X: 1, Y: 1}, geom.Point{X: 2, Y: 2}}, poly, true},
		{"polygon-overlap", Intersects, square(3, 3, 2), poly, true},
		{"polygon-disjoint", Intersects, square(5, 5, 1), poly, false},
		{"polygon-inside", Intersects, square(1, 1, 1), poly, true},
		{"point-inside", Intersects, geom.Point{X: 1, Y: 1}, poly, true},
		{"point-outside", Intersects, geom.Point{X: 9, Y: 9}, poly, false},
		{"contains-inner", Contains, poly, square(1, 1, 1), true},
		{"contains-straddling", Contains, poly, square(3, 3, 2), false},
		{"contains-is-directional", Contains, square(1, 1, 1), poly, false},
		{"within-inner", Within, square(1, 1, 1), poly, true},
		{"within-is-directional", Within, poly, square(1, 1, 1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.pred.match(c.f, c.t)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("%s.match(%v, %v) = %v, want %v", c.pred, c.f, c.t, got, c.want)
			}
		})
	}
}

// Contact confined to the polygon boundary only counts as intersecting
// for points; polygons and lines must overlap with positive measure.
func TestPredicateBoundaryContact(t *testing.T) {
	poly := square(0, 0, 4)
	cases := []struct {
		name string
		g    geom.Geom
		want bool
	}{
		{"edge-adjacent-polygon", square(4, 0, 4), false},
		{"line-ends-on-edge",
			geom.LineString{geom.Point{X: 6, Y: 2}, geom.Point{X: 4, Y: 2}}, false},
		{"point-on-edge", geom.Point{X: 4, Y: 2}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Intersects.match(poly, c.g)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("intersects(%v, %v) = %v, want %v", poly, c.g, got, c.want)
			}
		})
	}
}

func TestPredicateMatchUnsupported(t *testing.T) {
	l1 := geom.LineString{geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 1}}
	l2 := geom.LineString{geom.Point{X: 0, Y: 1}, geom.Point{X: 1, Y: 0}}
	if _, err := Intersects.match(l1, l2); err == nil {
		t.Error("expected an error for a line/line intersection test")
	}
	if _, err := Contains.match(l1, l2); err == nil {
		t.Error("expected an error for containment in a non-polygonal geometry")
	}
}
