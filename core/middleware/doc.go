// Package middleware groups the HTTP middleware for the Fiber application.
//
//   - auth: API key validation for every non-public route.
//   - rayid: a unique request id (RayID) stored in the context and echoed in
//     the response headers for tracing.
//
// Request logging lives in core/logger so it can share the ray id helper.
package middleware
