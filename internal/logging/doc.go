// Package logging builds the shared zap logger for alignd.
//
// Every service in the process takes a *zap.Logger; this package owns the
// single place where level, encoding, and output are decided. The MCP
// stdio transport owns stdout, so logs always go to stderr.
package logging
