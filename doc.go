// Package gotable provides in-memory pagination and filtering primitives
// for table-like views, plus a GORM push-down of the same semantics.
//
// Overview
//
// gotable implements two independent components:
//   - Paginator: derives the current page of a collection and provides
//     bounds-safe navigation. Out-of-range moves are silently ignored.
//   - FilterEngine: narrows a collection by a free-text query over search
//     fields and by per-key value-set filters. The result is an
//     order-preserving subsequence of the input.
//
// Key concepts
//   - Getters: typed accessors used to read item fields by name.
//   - FilterState: immutable filter snapshot; every change yields a new
//     version, which drives recomputation.
//   - Table: composes FilterEngine, optional Orderings and Paginator.
//   - PageToken / RawPager: opaque page references for API payloads.
//   - FilterState.Apply / FetchPage: the same filters executed by the
//     database through GORM.
package gotable
