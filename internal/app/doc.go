// Package app wires configuration into a storage backend and a checklist store.
package app
