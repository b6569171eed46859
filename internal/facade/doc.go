// Package facade exposes the stable command surface of alignd.
//
// Every operation the presentation layer may invoke lives here; the store,
// aggregation engine, and reflection orchestrator are never reached any
// other way. Operations take explicit identifiers. The façade holds no
// notion of a "current" user or identity; selection state belongs entirely
// to the caller.
//
// Inputs are validated before any component is touched, and the generation
// credential is accepted per call and never persisted.
package facade
