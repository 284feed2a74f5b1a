// SPDX-License-Identifier: MPL-2.0

// Package component provides the eight URL components and the shared
// contracts they satisfy.
//
// Scalar components (Scheme, User, Pass, Port, Fragment) wrap one optional
// value. Host and Path are ordered label sequences built on LabelSequence,
// which supports anchor-relative insertion and removal. Query keeps an ordered,
// possibly nested key/value tree parsed from bracketed keys.
//
// Every setter validates its input completely before the receiver is touched,
// so a failed call never leaves a component half-updated. Validation failures
// are reported as *ValidationError and forbidden state transitions (mutating
// the labels of an IP literal host) as *InvariantViolationError.
package component
