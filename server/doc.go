// Package server provides the HTTP server for the cortex flow-execution API.
// It wraps Gin with the standard middleware stack, response envelopes, and
// graceful shutdown, and serves h2c so HTTP/2 clients work without TLS.
package server
