// Package server exposes the routing engine over HTTP and WebSocket.
//
// What: a gorilla/mux API for placing and removing effects, selecting
// route endpoints (by node id or by coordinate snapping) and reading
// the current path, plus a gorilla/websocket hub that pushes
// weights_changed, path and signal events to every connected client.
//
// Why: the engine is an in-process library; this package is its
// process boundary. It holds no routing state of its own; every
// request is translated into an engine call and every engine
// notification into a broadcast, so clients observing the socket see
// the same sequence of results the engine computed.
//
// Error mapping: unknown effects, nodes and snap misses are 404;
// malformed payloads are 400; a closed engine is 503. A no-path
// outcome is not an error: GET /route answers 200 with found=false.
package server
