// Package search is the live-search orchestration pipeline. An [Orchestrator]
// validates a request, serves comprehensive results from an in-process cache,
// builds the provider request for the selected source kind and analysis mode,
// executes it through a [Provider], and turns the free-text answer into a
// typed [Result] with citation metadata.
//
// Extraction never fails: when no structured object can be recovered from the
// provider answer, [Extract] synthesises a single-item fallback result.
package search
