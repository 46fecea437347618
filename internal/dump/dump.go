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

// Package dump writes an e-graph's printable form to an io.Writer,
// optionally zstd-compressed, for saving debug snapshots between
// saturation passes.
package dump

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Graph is the part of egraph.EGraph that dump needs; defined here to
// keep this package from importing egraph, since dump is a leaf
// utility the egraph/driver/cmd layers all sit above.
type Graph interface {
	String() string
}

// Text writes g's printable form to w, unmodified.
func Text(w io.Writer, g Graph) error {
	_, err := io.WriteString(w, g.String())
	return err
}

// ZstdWriter wraps a zstd encoder the way compr.Compressor wraps
// third-party compression libraries: a single-purpose adapter with a
// Name and a Close, rather than exposing the zstd.Encoder type
// directly to callers.
type ZstdWriter struct {
	enc *zstd.Encoder
}

// NewZstdWriter returns a ZstdWriter that streams zstd-compressed
// output to w. Callers must call Close to flush the final frame.
func NewZstdWriter(w io.Writer) (*ZstdWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("dump: new zstd writer: %w", err)
	}
	return &ZstdWriter{enc: enc}, nil
}

func (z *ZstdWriter) Name() string { return "zstd" }

func (z *ZstdWriter) Write(p []byte) (int, error) { return z.enc.Write(p) }

func (z *ZstdWriter) Close() error { return z.enc.Close() }

// Snapshot writes g's printable form to w, zstd-compressed. It is the
// compressed counterpart to Text, used when a run logs a debug
// snapshot per pass and wants to avoid the size that uncompressed
// e-graph dumps reach after a few hundred rule firings.
func Snapshot(w io.Writer, g Graph) error {
	zw, err := NewZstdWriter(w)
	if err != nil {
		return err
	}
	if err := Text(zw, g); err != nil {
		zw.Close()
		return fmt.Errorf("dump: write snapshot: %w", err)
	}
	return zw.Close()
}

// Restore decompresses a zstd-framed snapshot produced by Snapshot
// and returns its text.
func Restore(r io.Reader) (string, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return "", fmt.Errorf("dump: new zstd reader: %w", err)
	}
	defer dec.Close()
	b, err := io.ReadAll(dec)
	if err != nil {
		return "", fmt.Errorf("dump: read snapshot: %w", err)
	}
	return string(b), nil
}
