// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffstats

import (
	"fmt"
	"io"
	"math"

	"github.com/bureau-foundation/huffseal/lib/codec"
	"github.com/bureau-foundation/huffseal/lib/container"
	"github.com/bureau-foundation/huffseal/lib/huffman"
)

// Report describes one buffer's compression characteristics.
type Report struct {
	InputBytes      int
	DistinctSymbols int

	// EntropyBits is the Shannon entropy of the byte distribution in
	// bits per byte, the lower bound for any order-0 coder.
	EntropyBits float64

	// AverageCodeBits is the frequency-weighted mean code length.
	AverageCodeBits float64
	MaxCodeBits     int

	// PayloadBytes includes the one-byte padding header.
	PayloadBytes int

	// TableBytes is the size of the code table as serialized in a
	// container.
	TableBytes int

	// BaselineBytes maps each baseline to its compressed size.
	BaselineBytes map[Baseline]int
}

// Ratio returns (payload + table) / input. Values below 1 mean the
// container body is smaller than the input.
func (r *Report) Ratio() float64 {
	if r.InputBytes == 0 {
		return 0
	}
	return float64(r.PayloadBytes+r.TableBytes) / float64(r.InputBytes)
}

// Analyze compresses data and measures the result. Returns
// huffman.ErrEmptyAlphabet for empty input.
func Analyze(data []byte) (*Report, error) {
	frequencies := huffman.CountFrequencies(data)
	payload, table, err := huffman.Compress(data)
	if err != nil {
		return nil, err
	}

	encodedTable, err := codec.Marshal(container.NewTable(table))
	if err != nil {
		return nil, fmt.Errorf("encoding code table: %w", err)
	}

	report := &Report{
		InputBytes:      len(data),
		DistinctSymbols: frequencies.Distinct(),
		EntropyBits:     entropy(&frequencies),
		MaxCodeBits:     table.MaxLength(),
		PayloadBytes:    len(payload),
		TableBytes:      len(encodedTable),
		BaselineBytes:   make(map[Baseline]int, len(Baselines)),
	}

	var weightedBits uint64
	for symbol, code := range table {
		weightedBits += frequencies[symbol] * uint64(len(code))
	}
	report.AverageCodeBits = float64(weightedBits) / float64(len(data))

	for _, baseline := range Baselines {
		size, err := compressedSize(data, baseline)
		if err != nil {
			return nil, err
		}
		report.BaselineBytes[baseline] = size
	}
	return report, nil
}

func entropy(frequencies *huffman.FrequencyTable) float64 {
	total := float64(frequencies.Total())
	if total == 0 {
		return 0
	}
	var bits float64
	for _, count := range frequencies {
		if count == 0 {
			continue
		}
		probability := float64(count) / total
		bits -= probability * math.Log2(probability)
	}
	return bits
}

// Write prints the report as aligned text.
func (r *Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"input:            %d bytes\n"+
			"distinct symbols: %d\n"+
			"entropy:          %.4f bits/byte\n"+
			"average code:     %.4f bits/byte\n"+
			"longest code:     %d bits\n"+
			"payload:          %d bytes\n"+
			"code table:       %d bytes\n"+
			"ratio:            %.4f\n",
		r.InputBytes, r.DistinctSymbols, r.EntropyBits, r.AverageCodeBits,
		r.MaxCodeBits, r.PayloadBytes, r.TableBytes, r.Ratio())
	if err != nil {
		return err
	}
	for _, baseline := range Baselines {
		size := r.BaselineBytes[baseline]
		if _, err := fmt.Fprintf(w, "%-17s %d bytes\n", baseline.String()+":", size); err != nil {
			return err
		}
	}
	return nil
}
