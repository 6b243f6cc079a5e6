// Package cli provides the interactive jobport command-line client.
//
// It wires configuration, the durable session store, the REST API client,
// and the client-side services into an interactive REPL. Typical flow:
// restore the persisted session, fetch the job board, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout with a persisted session
//   - Browse, filter, and inspect job postings (with a demo-data banner
//     when the backend is unreachable)
//   - Post / edit / delete jobs (employer and admin only)
//   - Apply with a PDF resume upload and optional cover letter
//   - Review applications per job and move them between statuses
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
