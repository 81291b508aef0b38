// Package cli provides the interactive roomsync command-line client.
//
// It wires configuration, the device store, the backend probe, the remote
// and local strategies and the session context behind a small REPL.
//
// Key features:
//   - Sign in / sign up / demo sign-in, against the server or on the device
//   - Roommate profile completion and editing
//   - Favorite and viewed rooms
//   - Explicit backend recheck ("recheck")
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
