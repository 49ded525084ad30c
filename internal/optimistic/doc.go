// Package optimistic contains "lock-free" data types that use optimistic
// concurrency control to allow atomic mutations.
package optimistic
