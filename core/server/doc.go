// Package server holds the HTTP server configuration.
//
// The start command reads the port, the API key, the request body limit and
// the graceful shutdown timeout from here. An empty API key disables the auth
// middleware.
package server
