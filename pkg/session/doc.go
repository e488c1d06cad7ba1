/*
Package session keeps navigator sessions for long-lived adapters (HTTP, MCP).

A Manager loads a session from a StateStore, applies one navigator operation
and saves the result while holding a per-session lock. With a
DistributedLocker the lock also spans replicas.
*/
package session
