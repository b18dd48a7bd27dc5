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
	"io/ioutil"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	goshp "github.com/jonas-p/go-shp"
)

// idField is the name of the feature-identifier attribute written to
// output shapefiles.
const idField = "fid"

// ReadShapefile reads the shapefile at filename into a Collection.
// All DBF attribute columns are retained as strings, feature IDs are
// assigned from row order, and the spatial reference is taken from the
// companion .prj file if one exists.
func ReadShapefile(filename string) (*Collection, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("hydroscreen: opening shapefile %s: %v", filename, err)
	}
	defer d.Close()

	fields := d.Reader.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.String()
	}

	c := &Collection{
		Features: make([]*Feature, 0, d.AttributeCount()),
		Columns:  cols,
	}
	if b, err := ioutil.ReadFile(strings.TrimSuffix(filename, ".shp") + ".prj"); err == nil {
		c.SRDef = strings.TrimSpace(string(b))
		c.SR, err = proj.Parse(c.SRDef)
		if err != nil {
			return nil, fmt.Errorf("hydroscreen: parsing spatial reference of %s: %v", filename, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("hydroscreen: reading projection file for %s: %v", filename, err)
	}

	for i := 0; ; i++ {
		g, attrs, more := d.DecodeRowFields(cols...)
		if !more {
			break
		}
		c.Features = append(c.Features, &Feature{Geom: g, ID: i, Fields: attrs})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("hydroscreen: reading shapefile %s: %v", filename, err)
	}
	return c, nil
}

// WriteShapefile writes c to a shapefile at filename, replacing any
// existing file. Feature IDs are written to a numeric attribute column
// named "fid" followed by the attribute columns in their original order,
// and the spatial reference definition, if there is one, is written to
// the companion .prj file.
func WriteShapefile(c *Collection, filename string) error {
	base := strings.TrimSuffix(filename, ".shp")
	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj"} {
		os.Remove(base + ext)
	}

	cols := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		if strings.EqualFold(col, idField) {
			continue // the identifier column is regenerated below
		}
		cols = append(cols, col)
	}
	fields := make([]goshp.Field, 0, len(cols)+1)
	fields = append(fields, goshp.NumberField(idField, 10))
	for _, col := range cols {
		length := 1
		for _, f := range c.Features {
			if n := len(f.Fields[col]); n > length {
				length = n
			}
		}
		if length > 254 {
			length = 254
		}
		fields = append(fields, goshp.StringField(col, uint8(length)))
	}

	e, err := shp.NewEncoderFromFields(base+".shp", shapeType(c), fields...)
	if err != nil {
		return fmt.Errorf("hydroscreen: creating shapefile %s: %v", filename, err)
	}
	for _, f := range c.Features {
		vals := make([]interface{}, 0, len(cols)+1)
		vals = append(vals, f.ID)
		for _, col := range cols {
			vals = append(vals, f.Fields[col])
		}
		if err := e.EncodeFields(f.Geom, vals...); err != nil {
			return fmt.Errorf("hydroscreen: writing feature %d to %s: %v", f.ID, filename, err)
		}
	}
	e.Close()

	if c.SRDef != "" {
		w, err := os.Create(base + ".prj")
		if err != nil {
			return fmt.Errorf("hydroscreen: creating projection file for %s: %v", filename, err)
		}
		if _, err := w.Write([]byte(c.SRDef)); err != nil {
			w.Close()
			return fmt.Errorf("hydroscreen: writing projection file for %s: %v", filename, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("hydroscreen: writing projection file for %s: %v", filename, err)
		}
	}
	return nil
}

// shapeType chooses the shapefile geometry type for c from its first
// feature. An empty collection is written as a polygon file.
func shapeType(c *Collection) goshp.ShapeType {
	if len(c.Features) == 0 {
		return goshp.POLYGON
	}
	switch c.Features[0].Geom.(type) {
	case geom.Point:
		return goshp.POINT
	case geom.MultiPoint:
		return goshp.MULTIPOINT
	case geom.LineString, geom.MultiLineString:
		return goshp.POLYLINE
	default:
		return goshp.POLYGON
	}
}

// ReadGeoJSONMask reads an area-of-interest polygon from a GeoJSON file.
// MultiPolygon geometries are flattened into a single polygon.
func ReadGeoJSONMask(filename string) (geom.Polygon, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("hydroscreen: reading mask file: %v", err)
	}
	j, err := geojson.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("hydroscreen: decoding mask file %s: %v", filename, err)
	}
	switch m := j.(type) {
	case geom.Polygon:
		return m, nil
	case geom.MultiPolygon:
		var mask geom.Polygon
		for _, p := range m {
			mask = append(mask, p...)
		}
		return mask, nil
	default:
		return nil, fmt.Errorf("hydroscreen: invalid mask geometry type %T", j)
	}
}
