// Package buffer provides the lock-free sample ring that sits between an
// audio capture callback and the spectral processing loop.
//
// A Ring has exactly one writer and any number of readers. The writer never
// blocks and readers never block; the only shared state is the backing array
// and a single atomic cursor that counts every sample ever written. Readers
// address samples by absolute index, so a reader that falls more than
// Capacity samples behind the writer silently observes overwritten data.
// Sizing the ring is the caller's job.
package buffer
