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

// Package hydroscreen screens a collection of candidate waterbody
// polygons against a reference collection of river segments: it
// partitions the candidates into those that do and do not satisfy a
// topological predicate (intersects, contains, or within) against any
// reference geometry. Collections are read from and written to
// shapefiles, and both inputs are reprojected to a common planar spatial
// reference before filtering.
package hydroscreen

// Version gives the version number of this software.
const Version = "0.3.1"
