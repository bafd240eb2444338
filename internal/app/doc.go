// Package app wires the hook-aware HTTP client, the observer and its sink together
// and runs the requests given on the command line.
package app
