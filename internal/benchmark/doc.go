// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of urlnorm:
//   - Punycode transcoding of host labels
//   - URL parsing and canonical serialization
//   - Query tree parsing and merging
//   - Batch normalization with and without the purell pass
//   - CUE manifest and configuration validation
//
// To generate a PGO profile, run:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
