// Package services implements the business logic layer of the conversion
// service. It sits between the HTTP handlers and the reshape/tableio
// packages, owning run lifecycles, metrics, and artifact rendering so the
// transport layer stays thin.
//
// # Available Services
//
//	- ConvertService: reads an export file, runs the conversion, renders
//	  the CSV/workbook artifacts, and serves the format catalog
//	- HealthService: liveness, readiness and version reporting
//
// Services receive their collaborators through constructors and log through
// an injected *slog.Logger. Conversion failures come back as the sentinel
// errors of the reshape and tableio packages, which the transport layer
// maps to problem responses.
package services
