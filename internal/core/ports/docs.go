// Package ports defines the contracts between the tracker core and its
// infrastructure: the tabular backend, the domain repositories built on it,
// the outbound messenger and the conversation session store.
// These interfaces establish dependency inversion and keep the core testable
// with in-memory and mock implementations.
package ports
