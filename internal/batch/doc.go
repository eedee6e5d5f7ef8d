// Package batch splits ordered work into fixed-size chunks and drives
// them strictly in sequence against an injected action, yielding to the
// scheduler between chunks. Failures surface as PartialError with the
// count of items already applied.
package batch
