// Package listener implements the attach request queue: a fixed pool of
// preallocated request slots, a FIFO bridging many concurrent producers to
// one consumer goroutine, and the version dispatch that turns a queued slot
// into a channel-attached Operation.
//
// Producers call EnqueueV1 or EnqueueV2 and get back a numeric status; they
// never block on the queue. The single consumer blocks in Dequeue until a
// request is available, recycles the slot immediately (capacity bounds
// pending requests, not in-service ones), then opens the client's channel
// and, for v2, reads the request body from it. A request whose transport
// fails is logged and silently dropped; the client sees no reply at all.
package listener
