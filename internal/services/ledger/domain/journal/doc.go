// Package journal provides an in-memory event journal that assigns
// sequence numbers and chain hashes the same way the SQLite store does.
package journal
