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

package main

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// Session describes one eqsat demo run: which built-in rule set to
// saturate with, which analyses to register on the e-graph before
// running it, and the pass cap. Sessions are authored as YAML (or
// plain JSON, since YAML is a superset) the way db.TableDefinition
// is authored as JSON — a small config struct with json tags,
// decoded through a single entry point.
type Session struct {
	// Term names a built-in starting term from cmd/eqsat/examples
	// (see examples.StartTermByName). There is no S-expression
	// parser in this engine, so the term to saturate is selected by
	// name rather than supplied as text.
	Term string `json:"term"`
	// Rules names a built-in rule set from cmd/eqsat/examples.
	Rules string `json:"rules"`
	// Analyses lists FunTab analyses to register before running,
	// by name: "cost", "interval", "constfold".
	Analyses []string `json:"analyses,omitempty"`
	// MaxPasses caps driver.Saturate; zero means unlimited.
	MaxPasses int `json:"maxPasses,omitempty"`
}

// DecodeSession reads a Session from YAML (or JSON) text.
func DecodeSession(r io.Reader) (*Session, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("eqsat: reading session config: %w", err)
	}
	s := new(Session)
	if err := yaml.Unmarshal(buf, s); err != nil {
		return nil, fmt.Errorf("eqsat: decoding session config: %w", err)
	}
	if s.Term == "" {
		return nil, fmt.Errorf("eqsat: session config has no term")
	}
	if s.Rules == "" {
		return nil, fmt.Errorf("eqsat: session config has no rules")
	}
	return s, nil
}
