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
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/hydroscreen"
)

// Run executes one screening operation: read both inputs, apply the
// optional attribute selections, reproject to the output spatial
// reference, apply the optional area-of-interest mask, filter, and
// write the kept (and optionally discarded) features.
func Run(cfg *ConfigData) error {
	start := time.Now()

	target, err := hydroscreen.ReadShapefile(cfg.TargetShapefile)
	if err != nil {
		return err
	}
	filter, err := hydroscreen.ReadShapefile(cfg.FilterShapefile)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"targets": target.Len(),
		"filters": filter.Len(),
	}).Info("loaded input shapefiles")

	if cfg.TargetWhere != "" {
		if target, err = hydroscreen.Select(target, cfg.TargetWhere); err != nil {
			return err
		}
		logrus.WithField("targets", target.Len()).Info("applied target attribute selection")
	}
	if cfg.FilterWhere != "" {
		if filter, err = hydroscreen.Select(filter, cfg.FilterWhere); err != nil {
			return err
		}
		logrus.WithField("filters", filter.Len()).Info("applied filter attribute selection")
	}

	if target, err = target.Reproject(cfg.OutputSR); err != nil {
		return err
	}
	if filter, err = filter.Reproject(cfg.OutputSR); err != nil {
		return err
	}
	if err := hydroscreen.CheckSR(target, filter); err != nil {
		return err
	}

	if cfg.MaskGeoJSON != "" {
		mask, err := hydroscreen.ReadGeoJSONMask(cfg.MaskGeoJSON)
		if err != nil {
			return err
		}
		if target, err = target.Mask(mask); err != nil {
			return err
		}
		logrus.WithField("targets", target.Len()).Info("applied area-of-interest mask")
	}

	result, err := hydroscreen.Filter(target, filter, &hydroscreen.Options{
		Predicate:       cfg.Predicate,
		Invert:          !cfg.KeepMatching,
		ReturnDiscarded: cfg.DiscardedShapefile != "",
		Workers:         cfg.Workers,
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"predicate": cfg.Predicate.String(),
		"matched":   len(result.Matched),
		"kept":      result.Kept.Len(),
	}).Info("finished screening")

	if err := hydroscreen.WriteShapefile(result.Kept, cfg.OutputShapefile); err != nil {
		return err
	}
	if cfg.DiscardedShapefile != "" {
		if err := hydroscreen.WriteShapefile(result.Discarded, cfg.DiscardedShapefile); err != nil {
			return err
		}
	}
	logrus.WithFields(logrus.Fields{
		"output":  cfg.OutputShapefile,
		"elapsed": fmt.Sprint(time.Since(start).Round(time.Millisecond)),
	}).Info("wrote output")
	return nil
}
