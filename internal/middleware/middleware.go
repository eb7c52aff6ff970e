// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request logging, tracing, metrics, rate limiting,
// panic recovery and loading the book addressed by a route.
package middleware
