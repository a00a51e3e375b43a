// Package app is the application layer — the only component that
// references multiple domain components. It orchestrates the stream
// lifecycle and points ledger use cases.
package app
