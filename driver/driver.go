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

// Package driver runs ast.Rules against an egraph.EGraph to
// saturation: run_rules; rebuild, repeated until a pass changes
// nothing or an iteration cap is hit. The engine itself imposes no
// cap (egraph.EGraph.RunRules/Rebuild have none); the cap here is a
// policy the driver's caller opts into, matching spec.md §4.5's
// "the engine itself does not impose a cap."
package driver

import (
	"fmt"
	"log"

	"github.com/latticeql/eqsat/ast"
	"github.com/latticeql/eqsat/egraph"
	"github.com/latticeql/eqsat/internal/fingerprint"
)

// Result reports how a Saturate run ended.
type Result struct {
	// Passes is the number of run_rules+rebuild passes executed.
	Passes int
	// Converged is true if a pass changed nothing (a true fixed
	// point); false if the run stopped because it hit MaxPasses.
	Converged bool
}

// Options configures a Saturate run.
type Options struct {
	// MaxPasses caps the number of run_rules+rebuild passes. Zero
	// means unlimited — the caller accepts the (rule-set-dependent)
	// risk of non-termination noted in spec.md §4.5.
	MaxPasses int
	// Log receives one line per pass when non-nil, tagged with the
	// e-graph's run id, following cmd/snellerd's per-query log line
	// shape (see handler_execute_query.go's uuid.New()-tagged logs).
	Log *log.Logger
}

// Saturate repeatedly runs rs against g and rebuilds until a pass
// produces no new unions/repairs or opts.MaxPasses is reached.
// Rule-list order only affects which rule observes another's effects
// first within a pass (spec.md §5); the post-rebuild result for a
// confluent rule set does not depend on it.
func Saturate(g *egraph.EGraph, rs ast.Rules, opts Options) (Result, error) {
	rs = dedupeRules(rs, opts.Log)

	pass := 0
	for {
		if opts.MaxPasses > 0 && pass >= opts.MaxPasses {
			logPass(opts.Log, g, pass, false)
			return Result{Passes: pass, Converged: false}, nil
		}

		before := snapshot(g)
		if err := g.RunRules(rs); err != nil {
			return Result{Passes: pass}, fmt.Errorf("driver: pass %d: %w", pass, err)
		}
		g.Rebuild()
		pass++

		after := snapshot(g)
		logPass(opts.Log, g, pass, before == after)
		if before == after {
			return Result{Passes: pass, Converged: true}, nil
		}
	}
}

// snapshot is a cheap, order-independent proxy for "did this pass
// change anything observable": the printable form's length is not a
// sound equality check in general (two different e-graphs could
// coincidentally print the same length), so Saturate instead compares
// the full rendered text. This costs a full String() per pass, which
// is acceptable at the scale this engine targets (spec.md's non-goals
// exclude incremental/performance-sensitive saturation).
func snapshot(g *egraph.EGraph) string {
	return g.String()
}

func logPass(l *log.Logger, g *egraph.EGraph, pass int, converged bool) {
	if l == nil {
		return
	}
	l.Printf("run=%s pass=%d converged=%t", g.ID, pass, converged)
}

// dedupeRules drops rules whose fingerprint (query+action content,
// ignoring Name) repeats one already seen, keeping the first
// occurrence. This is the rule driver's run-log memoization: two
// rules registered under different names but with identical
// query/action text would otherwise fire twice per pass for no
// additional effect.
func dedupeRules(rs ast.Rules, l *log.Logger) ast.Rules {
	seen := make(map[[32]byte]string, len(rs))
	out := make(ast.Rules, 0, len(rs))
	for _, r := range rs {
		fp := fingerprint.Rule(r)
		if first, ok := seen[fp]; ok {
			if l != nil {
				l.Printf("rule %q duplicates %q, skipping", r.Name, first)
			}
			continue
		}
		seen[fp] = r.Name
		out = append(out, r)
	}
	return out
}
