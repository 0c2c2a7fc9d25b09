// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capability

import (
	"log/slog"
	"strings"

	"github.com/viztier/viztier/tier"
)

// highEndPatterns match vendor/renderer strings of hardware known to
// sustain the Full tier. Matching is case-insensitive substring.
var highEndPatterns = []string{
	"nvidia",
	"geforce",
	"quadro",
	"radeon rx",
	"radeon pro",
	"apple m",
	"arc a7",
}

// lowEndPatterns match integrated or software renderers that cannot
// sustain animated tiers.
var lowEndPatterns = []string{
	"intel(r) hd",
	"intel hd",
	"uhd graphics",
	"mali-4",
	"adreno 3",
	"swiftshader",
	"llvmpipe",
	"softpipe",
	"microsoft basic render",
}

// Probe runs the one-shot capability query and classifies the initial
// tier. It is called exactly once at process start and never fails
// fatally: a nil, erroring, or panicking query yields a report with
// Unknown set and an initial tier of [tier.Static].
func Probe(q Query) (caps Capabilities, initial tier.Tier) {
	defer func() {
		// a query reaching into a dead graphics context may panic;
		// treat that the same as an error return.
		if rec := recover(); rec != nil {
			slog.Error("capability: query panic", "panic", rec)
			caps = Capabilities{Unknown: true}
			initial = tier.Static
		}
	}()
	if q == nil {
		return Capabilities{Unknown: true}, tier.Static
	}
	caps, err := q.Capabilities()
	if err != nil {
		slog.Error("capability: query failed", "err", err)
		return Capabilities{Unknown: true}, tier.Static
	}
	return caps, Classify(caps)
}

// Classify maps a capability report to an initial tier:
//   - the system reduce-motion preference forces [tier.Static]
//     regardless of hardware;
//   - known high-end hardware with instancing support gets [tier.Full];
//   - known low-end or software renderers get [tier.Static];
//   - anything unrecognized defaults to the middle [tier.Lite].
func Classify(caps Capabilities) tier.Tier {
	if caps.ReduceMotion {
		return tier.Static
	}
	if caps.Unknown {
		return tier.Static
	}
	id := strings.ToLower(caps.Vendor + " " + caps.Renderer)
	for _, pat := range lowEndPatterns {
		if strings.Contains(id, pat) {
			return tier.Static
		}
	}
	for _, pat := range highEndPatterns {
		if strings.Contains(id, pat) {
			if caps.Extensions.Instancing && caps.Extensions.FloatTextures {
				return tier.Full
			}
			// high-end name but missing core extensions: be cautious.
			return tier.Lite
		}
	}
	return tier.Lite
}
