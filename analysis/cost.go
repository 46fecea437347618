// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package analysis

import (
	"golang.org/x/exp/constraints"

	"github.com/latticeql/eqsat/egraph"
	"github.com/latticeql/eqsat/table"
)

// CostRepair is the min lattice join: the textbook FunTab repair,
// generic enough to cost e-nodes in whatever numeric unit a caller
// wants (op count, estimated cycles, ...).
func CostRepair[T constraints.Ordered](a, b T) T {
	return minOf(a, b)
}

// RegisterCost registers a cost FunTab named name on g, whose repair
// is CostRepair. Callers typically set an initial per-e-node cost
// with a SetFun action as a rule fires, and read back the minimum
// cost ever recorded for a canonical argument tuple via the returned
// table's Get.
func RegisterCost[T constraints.Ordered](g *egraph.EGraph, name string) *table.FunTab[T] {
	return egraph.RegisterFunTab(g, name, CostRepair[T])
}
