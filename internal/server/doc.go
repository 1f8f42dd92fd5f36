// Package server provides HTTP routing, middleware, and the server lifecycle for the web app.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses a chi mux internally with method filtering and {param} patterns.
//
// # Middleware
//
// [DefaultMiddleware] stacks chi's request id, recoverer, and timeout middleware around [RequestLogger],
// which writes one structured log line per request through charmbracelet/log.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Lifecycle
//
// [Serve] listens, serves until its context is canceled, and then shuts down gracefully.
package server
