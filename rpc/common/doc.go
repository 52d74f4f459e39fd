// Package common provides configuration structures and logging shared by the
// stash client and worker.
//
// Key Components:
//
//   - ServerConfig: configuration for the worker process - transport choice,
//     rendezvous endpoint, optional metrics listener and log level.
//
//   - ClientConfig: configuration for one-shot client calls - transport
//     choice, endpoint and exchange timeout.
//
//   - Logger: a custom implementation of the dragonboat logging interface
//     providing consistent formatting across all packages.
package common
