// Package app provides application initialization and lifecycle management
// for the meter export conversion service. It wires configuration, logging,
// metrics, services, HTTP handlers and middleware together at startup and
// handles graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize structured logging
//	3. Resolve and create the data/log directories
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure the HTTP server
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run handles SIGINT and SIGTERM so that active requests are completed
// within the configured shutdown timeout before the process exits. All
// initialization errors are returned to the caller; the package never
// calls os.Exit() directly.
package app
