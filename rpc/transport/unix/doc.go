// Package unix implements the default transport for stash using Unix domain
// sockets. Client and worker find each other through a well-known socket
// path; the worker unlinks the socket file again when its listener closes,
// so the path is the only artifact the worker ever leaves on disk and it
// never outlives the process.
package unix
