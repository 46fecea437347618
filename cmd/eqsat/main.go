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

// Command eqsat runs a small equality-saturation session from a YAML
// config: insert a built-in starting term, register the requested
// analyses, saturate against a built-in rule set, and print (or dump)
// the result.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/latticeql/eqsat/analysis"
	"github.com/latticeql/eqsat/cmd/eqsat/examples"
	"github.com/latticeql/eqsat/driver"
	"github.com/latticeql/eqsat/egraph"
	"github.com/latticeql/eqsat/internal/dump"
)

var (
	dashv      bool
	configPath string
	dumpPath   string
)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose: log one line per saturation pass")
	flag.StringVar(&configPath, "config", "", "path to a YAML session config (required)")
	flag.StringVar(&dumpPath, "dump", "", "path to write a zstd-compressed snapshot of the result (default: print to stdout)")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if configPath == "" {
		exitf("usage: eqsat -config session.yaml [-v] [-dump snapshot.zst]\n")
	}

	f, err := os.Open(configPath)
	if err != nil {
		exitf("%s\n", err)
	}
	sess, err := DecodeSession(f)
	f.Close()
	if err != nil {
		exitf("%s\n", err)
	}

	g, err := build(sess)
	if err != nil {
		exitf("%s\n", err)
	}

	var logger *log.Logger
	if dashv {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	rules, ok := examples.ByName(sess.Rules)
	if !ok {
		exitf("eqsat: unknown rule set %q (known: %v)\n", sess.Rules, examples.Names())
	}
	result, err := driver.Saturate(g, rules, driver.Options{MaxPasses: sess.MaxPasses, Log: logger})
	if err != nil {
		exitf("eqsat: %s\n", err)
	}
	if dashv {
		log.Printf("saturation finished: passes=%d converged=%t", result.Passes, result.Converged)
	}

	if dumpPath == "" {
		if err := dump.Text(os.Stdout, g); err != nil {
			exitf("eqsat: writing result: %s\n", err)
		}
		return
	}
	out, err := os.Create(dumpPath)
	if err != nil {
		exitf("%s\n", err)
	}
	defer out.Close()
	if err := dump.Snapshot(out, g); err != nil {
		exitf("eqsat: writing snapshot: %s\n", err)
	}
}

// build constructs an e-graph from a Session: the starting term plus
// the requested analyses, registered before any rule runs so that
// SetFun actions in the rule set (if any) have somewhere to write.
func build(sess *Session) (*egraph.EGraph, error) {
	term, ok := examples.StartTermByName(sess.Term)
	if !ok {
		return nil, fmt.Errorf("eqsat: unknown term %q (known: %v)", sess.Term, examples.StartTermNames())
	}
	g := egraph.New()
	if _, err := g.Insert(term); err != nil {
		return nil, fmt.Errorf("eqsat: inserting starting term: %w", err)
	}
	for _, name := range sess.Analyses {
		switch name {
		case "cost":
			analysis.RegisterCost[int](g, "cost")
		case "interval":
			analysis.RegisterInterval(g, "range")
		case "constfold":
			analysis.RegisterConstFold(g, "const")
		default:
			return nil, fmt.Errorf("eqsat: unknown analysis %q", name)
		}
	}
	return g, nil
}
