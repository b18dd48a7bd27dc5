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

// Command hydroscreen is a command-line interface for screening
// candidate waterbody polygons against reference river geometries.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/hydroscreen/hydroscreenutil"
)

func main() {
	if err := hydroscreenutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
