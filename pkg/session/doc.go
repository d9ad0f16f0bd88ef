/*
Package session serializes access to registration sessions.

A Manager wraps a ports.StateStore with per-session locks so that concurrent
requests against the same session apply their read-modify-write cycles one at
a time. With a ports.DistributedLocker the guarantee extends across replicas.
*/
package session
