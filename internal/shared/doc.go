// Package shared holds utilities used across the converter codebase that
// do not belong to any single domain layer.
//
// The testutil subpackage provides slog capture helpers so tests can assert
// on structured log output without parsing formatted text. Nothing in this
// tree may depend on other internal packages; it sits below all of them.
package shared
