// Package observer attaches logging hooks to a hook-aware HTTP client.
// Each outgoing request, incoming response and failed transaction is written
// to a sink as a read-only descriptor; the transaction itself is never altered.
package observer
