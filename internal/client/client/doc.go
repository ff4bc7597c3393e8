// Package client is the HTTP adapter of the SimCar marketplace API.
//
// # Overview
//
// HTTPClient issues JSON (and multipart) requests against a fixed base URL
// and returns either the decoded payload or an *APIError. Two hooks run on
// every call:
//
//  1. Outbound: the bearer token of the current session (if any) is attached
//     as "Authorization: Bearer <token>", together with an X-Request-ID.
//  2. Inbound: failed responses are classified (see Kind). A 401 clears the
//     session token and cached user and fires the session-invalidated
//     callback once, unless the login entry point is the current view.
//
// # Error Handling
//
// Callers match failures with errors.Is against ErrUnauthorized,
// ErrClientError, ErrServerError, ErrNetwork and ErrDecode; ErrNotFound and
// ErrValidation refine ErrClientError. Describe renders a localized message.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call honors ctx
// cancellation; transport timeouts and cancellations surface as ErrNetwork.
package client
