// Package reshape implements the conversion engine that turns wide meter
// export tables into the normalized (timestamp, meter) output shape.
// It consolidates header parsing, timestamp normalization, decomposition
// and aggregation into a single synchronous pipeline with a diagnostics
// report per run.
//
// # Architecture
//
// The engine is organized into five components:
//
// 1. Header parser: composite column name → (meter, reading type, unit)
// 2. Timestamp normalizer: heterogeneous timestamp text → DD/MM/YYYY HH:MM
// 3. Decomposer: wide table → flat per-reading records
// 4. Aggregator: flat records → one row per (timestamp, meter)
// 5. Diagnostics: ordered warning/error report deciding run success
//
// # Usage
//
// Typical run over a loaded table:
//
//	engine := reshape.NewEngine(logger)
//	diags := reshape.NewDiagnostics()
//	result, err := engine.Run(table, diags)
//	if err != nil {
//	    // diags holds the error entries with offending values
//	}
//
// # Data Flow
//
//	Table → locate timestamp column → normalize timestamps → Decompose → Aggregate → Result
//
// # Error Handling
//
// Fatal conditions (missing timestamp column, unparseable timestamps, no
// usable data) abort the run and are recorded as error-severity diagnostics
// carrying the offending column names and values. Malformed headers and
// non-numeric cells degrade silently; they never abort a run.
//
// Each run is self-contained: no state is shared between runs, so the
// engine is safe to call concurrently, one table per call.
package reshape
