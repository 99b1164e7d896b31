// Package buffer provides the text buffer backing the indentation engine.
//
// The buffer stores the full text as an immutable string plus a line-start
// index, rebuilt on every edit. The indentation engine re-scans text for
// every request, so the buffer optimizes for cheap line/column addressing
// and substring views rather than for edit throughput.
//
// Position Types:
//
//   - Offset: byte position into the text
//   - Point: 0-indexed line and column, column measured in bytes
//
// Display columns (grapheme-cluster aware, used when rendering candidate
// columns) are computed with DisplayWidth and are distinct from byte
// columns.
//
// Concurrency:
//
// The engine runs synchronously inside a single host command loop, so the
// buffer performs no locking. Callers that share a buffer across
// goroutines must synchronize externally.
package buffer
