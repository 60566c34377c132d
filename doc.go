// Package treehash computes a single 32-byte digest over arbitrary byte
// sequences by arranging the input as a binary Merkle tree of fixed-size
// leaves.
//
// The tree shape is fixed by input length alone, so the same digest comes
// out whether the input is hashed all at once, streamed in over many Write
// calls, or split across a pool of workers: Sum, Writer, and ParallelWriter
// all agree bit-for-bit. Domain-separated leaf and parent compressions keep
// a root digest from ever colliding with an interior digest, or with the
// root of a tree over a different total length.
package treehash
