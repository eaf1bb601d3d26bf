// Package http implements the HTTP handlers of the conversion service.
// Handlers stay thin: they parse the multipart upload, validate options,
// delegate to the service layer, and map its errors to RFC 7807 problem
// responses. No conversion logic lives here.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → ConvertService
//	                                              ↓
//	HTTP Response ← render.JSON / attachment ←───┘
//
// Errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/missing-timestamp-column",
//	    "title": "No Timestamp Column",
//	    "status": 422,
//	    "detail": "no timestamp column among 3 columns...",
//	    "instance": "/api/convert#trace-abc123",
//	    "diagnostics": [...]
//	}
package http
