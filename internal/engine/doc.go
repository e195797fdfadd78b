// Package engine scans whole documents or directory trees of disclosures. It
// selects target files, runs the sentence scanner over each in parallel,
// reuses cached results for unchanged content, and returns per-document hits.
// External consumers that only need single-text scans should use pkg/core.
package engine
