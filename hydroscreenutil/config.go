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

package hydroscreenutil

import (
	"fmt"
	"os"

	"github.com/ctessum/geom/proj"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/hydroscreen"
	"github.com/spf13/cast"
)

// ConfigData holds the checked configuration for one screening run.
type ConfigData struct {
	// TargetShapefile and FilterShapefile are the candidate-polygon and
	// reference-geometry inputs.
	TargetShapefile string
	FilterShapefile string

	// OutputShapefile receives the kept features. DiscardedShapefile, if
	// non-empty, receives the complement.
	OutputShapefile    string
	DiscardedShapefile string

	// OutputSR is the Proj4 definition both inputs are reprojected to
	// before screening.
	OutputSR string

	// Predicate is the topological match test.
	Predicate hydroscreen.Predicate

	// KeepMatching keeps the features that match the predicate instead
	// of removing them.
	KeepMatching bool

	// MaskGeoJSON optionally restricts screening to candidates
	// intersecting a polygon read from this file.
	MaskGeoJSON string

	// TargetWhere and FilterWhere are optional attribute expressions
	// selecting the features that take part in screening.
	TargetWhere string
	FilterWhere string

	// Workers is the predicate-evaluation parallelism; zero means one
	// worker per CPU.
	Workers int
}

// Config unmarshals and checks a viper configuration for a screening
// run. Paths are expanded with respect to environment variables.
func Config(cfg *viper.Viper) (*ConfigData, error) {
	c := &ConfigData{
		TargetShapefile:    os.ExpandEnv(cfg.GetString("TargetShapefile")),
		FilterShapefile:    os.ExpandEnv(cfg.GetString("FilterShapefile")),
		OutputShapefile:    os.ExpandEnv(cfg.GetString("OutputShapefile")),
		DiscardedShapefile: os.ExpandEnv(cfg.GetString("DiscardedShapefile")),
		OutputSR:           cfg.GetString("OutputSR"),
		KeepMatching:       cfg.GetBool("KeepMatching"),
		MaskGeoJSON:        os.ExpandEnv(cfg.GetString("MaskGeoJSON")),
		TargetWhere:        cfg.GetString("TargetWhere"),
		FilterWhere:        cfg.GetString("FilterWhere"),
	}
	if c.TargetShapefile == "" {
		return nil, fmt.Errorf("hydroscreen: TargetShapefile is not specified")
	}
	if c.FilterShapefile == "" {
		return nil, fmt.Errorf("hydroscreen: FilterShapefile is not specified")
	}
	if c.OutputShapefile == "" {
		return nil, fmt.Errorf("hydroscreen: OutputShapefile is not specified")
	}
	var err error
	c.Predicate, err = hydroscreen.ParsePredicate(cfg.GetString("Predicate"))
	if err != nil {
		return nil, err
	}
	if c.OutputSR == "" {
		return nil, fmt.Errorf("hydroscreen: OutputSR is not specified")
	}
	if _, err := proj.Parse(c.OutputSR); err != nil {
		return nil, fmt.Errorf("hydroscreen: OutputSR: %v", err)
	}
	// Workers may come from a configuration file as a string.
	c.Workers, err = cast.ToIntE(cfg.Get("Workers"))
	if err != nil {
		return nil, fmt.Errorf("hydroscreen: Workers: %v", err)
	}
	if c.Workers < 0 {
		return nil, fmt.Errorf("hydroscreen: Workers must not be negative, got %d", c.Workers)
	}
	return c, nil
}
