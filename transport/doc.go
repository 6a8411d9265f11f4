// Package transport implements the authenticated HTTP layer shared by
// every API operation.
//
// # Architecture
//
// The package is organized into a small number of components:
//
//   - Client: request construction, URI resolution against the session
//     base address, and uniform 2xx-or-fail classification
//   - Session: the token header name and current token value, guarded
//     for concurrent readers
//   - Codec: the pluggable body serializer (XML by default)
//   - Logon/Logoff: the handshake that trades a Basic credential for a
//     session token, and the best-effort session teardown
//
// # Token renewal
//
// When the server answers 401 with the literal message "Authentication
// token has expired", the client re-authenticates and replays the
// original request exactly once. Concurrent callers observing an expired
// token share a single handshake through a single-flight guard. A 401 on
// a request that never carried the token header is a configuration bug
// and surfaces immediately as a ProtocolError.
//
// # Errors
//
//   - StatusError: any response outside 200-299, carrying the exact
//     status code and request URI
//   - ProtocolError: foreign-host URIs, malformed handshake responses,
//     a 401 without a prior token
//
// Failures are data: the transport never logs-and-swallows, and nothing
// is translated into generic error text on the way up.
package transport
