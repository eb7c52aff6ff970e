// Package errs defines the error types returned to API clients.
//
// Every failure a handler, middleware or service reports ends up as an
// HTTPError so clients always receive the same JSON shape.
package errs
