// Package ycmd manages a supervised ycmd semantic-analysis backend and the
// HMAC-signed HTTP protocol it speaks.
//
// The backend is an external process, spawned per workspace on an ephemeral
// localhost port. Every request to it must carry an HMAC-SHA256 signature
// computed with a secret shared only between this process and the backend;
// the secret is generated fresh for each launch and handed to the backend
// through a one-time options file.
//
// # Architecture
//
// The package is organized around these core components:
//
//   - Client: high-level interface for completions, diagnostics, and
//     completer commands
//   - Supervisor: owns the single live backend Instance, restarting it when
//     the workspace or settings change
//   - Transport: signed HTTP request/response exchange
//   - Request: per-call payload assembly (positions, open-document snapshots)
//
// # Quick Start
//
//	sup := ycmd.NewSupervisor(ycmd.SupervisorOptions{Logger: logger})
//	client := ycmd.NewClient(sup, ycmd.ClientOptions{Documents: docs, Logger: logger})
//	client.Configure("/ws", settings)
//	defer client.Shutdown(ctx)
//
//	list, err := client.Completions(ctx, "/ws/main.py", ycmd.Position{Line: 10, Character: 4})
//
// All positions accepted by this package are zero-based line/character pairs
// as editors report them; translation to the backend's one-based, byte-column
// convention happens internally.
//
// # Lifecycle
//
// Exactly one backend Instance is alive at a time. GetInstance either returns
// the held instance (same workspace root, structurally equal settings, process
// alive) or reaps it and launches a replacement. Callers must not hold an
// *Instance across calls; re-request it for every operation.
package ycmd
