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
	"fmt"

	"github.com/latticeql/eqsat/egraph"
	"github.com/latticeql/eqsat/table"
)

// Interval is a closed [Lo, Hi] bound on an integer-valued e-class,
// the value domain of the interval analysis. It plays the same role
// ints.Interval plays for byte-range compression in the teacher
// tree, narrowed here to a single half-open-free closed range per
// e-class rather than a compressed series.
//
// Hulled marks an interval that already covers two observations that
// turned out to be disjoint. Once set, it is sticky: the interval
// must only ever widen (hull) against further joins, never intersect
// again. Without this flag, a 3-way fold of two disjoint inputs and a
// third input that happens to fall inside their hull could intersect
// against that third input and silently narrow past the true bound
// depending on which pair is folded first.
type Interval struct {
	Lo, Hi int64
	Hulled bool
}

// String implements fmt.Stringer.
func (in Interval) String() string {
	return fmt.Sprintf("[%d, %d]", in.Lo, in.Hi)
}

func hull(a, b Interval) Interval {
	return Interval{Lo: minOf(a.Lo, b.Lo), Hi: maxOf(a.Hi, b.Hi), Hulled: true}
}

// IntervalRepair joins two bounds on the same e-class: when neither
// has hulled a prior disjoint pair and they overlap, the tighter
// (intersected) bound is the better estimate; otherwise the only
// sound bound covering both is their smallest enclosing interval,
// and the result is marked Hulled so later joins never intersect
// against it again. This makes the join associative: a 3-way (or
// wider) disagreement folds to the same hull regardless of fold
// order (see table.FunTab.Rebuild's pairwise, map-order-dependent
// fold).
func IntervalRepair(a, b Interval) Interval {
	if a.Hulled || b.Hulled {
		return hull(a, b)
	}
	lo, hi := maxOf(a.Lo, b.Lo), minOf(a.Hi, b.Hi)
	if lo <= hi {
		return Interval{Lo: lo, Hi: hi}
	}
	return hull(a, b)
}

// RegisterInterval registers an interval FunTab named name on g.
func RegisterInterval(g *egraph.EGraph, name string) *table.FunTab[Interval] {
	return egraph.RegisterFunTab(g, name, IntervalRepair)
}
