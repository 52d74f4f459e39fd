// Package cmd implements the command-line interface for stash, a small
// key-value store held by a background worker process and queried one
// command at a time.
//
// The package is organized into several subpackages:
//
//   - kv: client commands sending a single operation to a running worker
//     (get, set, del, dump, quit) plus a benchmark tool
//   - worker: starting the worker, in the foreground or detached
//   - util: shared utilities for command-line processing and configuration (internal use)
//
// See stash -help for a list of all commands.
package cmd
