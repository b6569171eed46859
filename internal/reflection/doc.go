// Package reflection orchestrates AI-generated daily reflections.
//
// A reflection run moves through Requested -> Assembling -> Generating ->
// Persisted, or Failed from any non-terminal state. The Assembling phase
// reads a consistent store snapshot and releases it before the external
// generation call begins, so a slow provider never blocks unrelated store
// operations. Nothing is written unless generation succeeded; regenerating
// a (identity, date) pair overwrites the prior content, never duplicates.
//
// The generation capability itself is a narrow interface (prompt in, text
// out, typed failure) so the concrete provider is swappable without
// touching orchestration logic.
package reflection
