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
	"strconv"

	"github.com/Knetic/govaluate"
)

// Select returns the features of c for which the boolean expression expr
// evaluates to true. Expression variables are the collection's attribute
// column names; attribute values that parse as numbers are presented to
// the expression as float64, everything else as string. For example:
//
//	class == 'river' && width_m >= 30
//
// Features missing a referenced column evaluate the variable as the
// empty string.
func Select(c *Collection, expr string) (*Collection, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("hydroscreen: parsing selection expression: %v", err)
	}
	o := &Collection{
		Columns: c.Columns,
		SR:      c.SR,
		SRDef:   c.SRDef,
	}
	params := make(map[string]interface{}, len(c.Columns))
	for _, f := range c.Features {
		for _, col := range c.Columns {
			params[col] = attributeValue(f.Fields[col])
		}
		v, err := e.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("hydroscreen: evaluating selection expression for feature %d: %v", f.ID, err)
		}
		keep, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("hydroscreen: selection expression %q must evaluate to a boolean, got %T", expr, v)
		}
		if keep {
			o.Features = append(o.Features, f)
		}
	}
	return o, nil
}

// attributeValue converts a DBF attribute string to the value presented
// to selection expressions.
func attributeValue(s string) interface{} {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
