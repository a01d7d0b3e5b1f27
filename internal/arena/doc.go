// Package arena provides the preallocated request-slot pool and the FIFO
// queue of in-flight requests, both as index-linked lists over one fixed
// backing array. Integer handles replace raw next-pointers, so a recycled
// slot can never be reached through a stale reference.
package arena
