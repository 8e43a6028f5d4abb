// Package cli provides the interactive to-do command-line client.
//
// It wires configuration, the local session database, the REST client and
// the task store, then runs a REPL. On start it restores the previous
// session if one was saved, and a background watcher probes the server
// to show whether the client is online.
//
// Commands:
//   - register / login / logout
//   - list, add <text>, toggle <n>, edit <n> <text>, rm <n>
//
// <n> is the 1-based position shown by list, or a task id.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
