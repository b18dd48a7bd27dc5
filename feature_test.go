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
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/geom/proj"
)

const (
	longlatProj = "+proj=longlat"

	// An equal-area projection of the kind filtering should happen in.
	equalAreaProj = "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96 +x_0=0 +y_0=0 +datum=NAD83 +units=m"
)

func TestCollectionReproject(t *testing.T) {
	c := collection(square(-97, 40, 0.5))
	var err error
	c.SR, err = proj.Parse(longlatProj)
	if err != nil {
		t.Fatal(err)
	}
	c.SRDef = longlatProj

	o, err := c.Reproject(equalAreaProj)
	if err != nil {
		t.Fatal(err)
	}
	if o.SRDef != equalAreaProj {
		t.Errorf("SRDef = %q, want %q", o.SRDef, equalAreaProj)
	}
	// Coordinates must have left degree space.
	b := o.Features[0].Bounds()
	if math.Abs(b.Min.X) < 360 && math.Abs(b.Min.Y) < 360 {
		t.Errorf("reprojected bounds %+v still look like degrees", b)
	}
	// The input collection is untouched.
	wantB := square(-97, 40, 0.5).Bounds()
	if !reflect.DeepEqual(c.Features[0].Bounds(), wantB) {
		t.Error("reprojection modified the input collection")
	}
	if err := CheckSR(c, o); err == nil {
		t.Error("expected a mismatch between longlat and equal-area collections")
	}
}

func TestCollectionReprojectNoSR(t *testing.T) {
	c := collection(square(0, 0, 1))
	if _, err := c.Reproject(equalAreaProj); err == nil {
		t.Error("expected an error reprojecting a collection with no spatial reference")
	}
}

func TestCheckSR(t *testing.T) {
	a := collection(square(0, 0, 1))
	b := collection(square(2, 2, 1))
	// Nothing to compare when neither collection has a spatial reference.
	if err := CheckSR(a, b); err != nil {
		t.Errorf("CheckSR with nil SRs = %v, want nil", err)
	}
	var err error
	a.SR, err = proj.Parse(longlatProj)
	if err != nil {
		t.Fatal(err)
	}
	a.SRDef = longlatProj
	b.SR, err = proj.Parse(equalAreaProj)
	if err != nil {
		t.Fatal(err)
	}
	b.SRDef = equalAreaProj
	err = CheckSR(a, b)
	if err == nil {
		t.Fatal("expected a mismatch error")
	}
	if _, ok := err.(*CRSMismatchError); !ok {
		t.Errorf("err type = %T, want *CRSMismatchError", err)
	}
	b.SR = a.SR
	if err := CheckSR(a, b); err != nil {
		t.Errorf("CheckSR with equal SRs = %v, want nil", err)
	}
}

func TestCollectionSubset(t *testing.T) {
	c := collection(square(0, 0, 1), square(2, 0, 1), square(4, 0, 1))
	in := map[int]struct{}{1: {}}
	if got, want := ids(c.Subset(in, true)), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("include subset = %v, want %v", got, want)
	}
	if got, want := ids(c.Subset(in, false)), []int{0, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("exclude subset = %v, want %v", got, want)
	}
}

func TestCollectionMask(t *testing.T) {
	c := collection(square(0, 0, 1), square(10, 10, 1))
	masked, err := c.Mask(square(-1, -1, 3))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ids(masked), []int{0}; !reflect.DeepEqual(got, want) {
		t.Errorf("masked = %v, want %v", got, want)
	}
}

func TestCollectionCopy(t *testing.T) {
	c := collection(square(0, 0, 1))
	c.Columns = []string{"name"}
	c.Features[0].Fields["name"] = "a"
	o := c.Copy()
	o.Features[0].Fields["name"] = "b"
	if c.Features[0].Fields["name"] != "a" {
		t.Error("modifying a copy changed the original")
	}
}
