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

// Package hydroscreenutil provides the command-line interface and
// configuration handling for the hydroscreen spatial filter.
package hydroscreenutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/hydroscreen"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to hydroscreen.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "TargetShapefile",
			usage: `
              TargetShapefile is the path to the shapefile of candidate
              polygons to be screened. It can be either a local path or an
              http(s) URL, in which case the shapefile and its sidecar
              files are downloaded before screening.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "FilterShapefile",
			usage: `
              FilterShapefile is the path to the shapefile of reference
              geometries (for example major river segments) that candidates
              are screened against. Local path or http(s) URL.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "OutputShapefile",
			usage: `
              OutputShapefile is the path the kept features are written to.`,
			defaultVal: "screened.shp",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "DiscardedShapefile",
			usage: `
              DiscardedShapefile, if set, is the path the complementary
              (discarded) features are written to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "OutputSR",
			usage: `
              OutputSR is the Proj4 definition of the spatial reference both
              inputs are reprojected to before screening and that the output
              is written in. The default is a contiguous-US Albers
              equal-area projection.`,
			defaultVal: "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96 +x_0=0 +y_0=0 +datum=NAD83 +units=m",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "Predicate",
			usage: `
              Predicate is the topological test between a reference geometry
              and a candidate polygon that counts as a match: intersects,
              contains, or within.`,
			shorthand:  "p",
			defaultVal: "intersects",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "KeepMatching",
			usage: `
              KeepMatching inverts the partition: instead of removing the
              candidates that match the predicate (the default), keep only
              the matching candidates.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "MaskGeoJSON",
			usage: `
              MaskGeoJSON is the path to an optional GeoJSON polygon (in the
              OutputSR spatial reference) restricting screening to candidates
              that intersect it.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "TargetWhere",
			usage: `
              TargetWhere is an optional attribute expression selecting the
              candidate features to screen, for example "class == 'pond'".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "FilterWhere",
			usage: `
              FilterWhere is an optional attribute expression selecting the
              reference features to screen against, for example
              "class == 'river'".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
		{
			name: "Workers",
			usage: `
              Workers is the number of goroutines used for predicate
              evaluation. Zero means one per CPU.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{screenCmd.Flags()},
		},
	}

	Cfg = viper.New()
	Cfg.SetEnvPrefix("HYDROSCREEN")
	Cfg.AutomaticEnv()
	for _, option := range options {
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(screenCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("hydroscreen: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "hydroscreen",
	Short: "Screen candidate waterbody polygons against reference rivers.",
	Long: `hydroscreen partitions a shapefile of candidate waterbody polygons by
whether each polygon satisfies a topological predicate against any geometry in
a reference shapefile (typically major river segments), and writes the kept
subset to a new shapefile.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'HYDROSCREEN_var' where
'var' is the name of the variable to be set. Path variables may themselves
contain environment variables.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of hydroscreen.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("hydroscreen v%s\n", hydroscreen.Version)
	},
	DisableAutoGenTag: true,
}

// screenCmd runs the spatial filter.
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run the spatial filter.",
	Long: `screen reads the target and filter shapefiles, reprojects both to
OutputSR, removes (or with --KeepMatching, keeps) the target features matching
the predicate against any filter feature, and writes the result to
OutputShapefile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := Config(Cfg)
		if err != nil {
			return err
		}
		cfg.TargetShapefile, err = maybeDownload(cfg.TargetShapefile)
		if err != nil {
			return err
		}
		cfg.FilterShapefile, err = maybeDownload(cfg.FilterShapefile)
		if err != nil {
			return err
		}
		return Run(cfg)
	},
	DisableAutoGenTag: true,
}
