package arena

import "github.com/GriffinCanCode/AttachKit/internal/wire"

// Version tags which protocol populated a slot.
type Version uint8

const (
	VersionUnknown Version = iota
	V1
	V2
)

// String returns the string representation of the version
func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return "unknown"
	}
}

// DefaultCapacity bounds how many requests may be pending at once. Requests
// being serviced do not count against it.
const DefaultCapacity = 4

// Handle indexes a slot within its arena. Handles never dangle: a recycled
// slot keeps its handle and is simply reused.
type Handle = int32

const none Handle = -1

// Slot holds one request's data between enqueue and dequeue. All slots are
// allocated once at arena construction and recycled for the process
// lifetime.
type Slot struct {
	Version     Version
	Command     string
	Args        [wire.MaxArgs]string
	ChannelName string

	next Handle
}

func (s *Slot) reset() {
	s.Version = VersionUnknown
	s.Command = ""
	for i := range s.Args {
		s.Args[i] = ""
	}
	s.ChannelName = ""
	s.next = none
}

// Arena is a fixed pool of request slots plus a FIFO queue, both built as
// index-linked lists over the same backing array. A slot is a member of
// exactly one of {free list, queue} or is transiently checked out; never
// both lists at once.
//
// Arena performs no locking of its own: the owning listener serializes all
// calls under its mutex.
type Arena struct {
	slots []Slot

	free      Handle // free-list head
	freeCount int

	head, tail Handle // queue
	queueLen   int
}

// New creates an arena with the given capacity. Capacity is fixed for the
// arena's lifetime.
func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	a := &Arena{
		slots: make([]Slot, capacity),
		free:  none,
		head:  none,
		tail:  none,
	}
	for i := capacity - 1; i >= 0; i-- {
		a.slots[i].next = a.free
		a.free = Handle(i)
	}
	a.freeCount = capacity
	return a
}

// Capacity returns the fixed slot count.
func (a *Arena) Capacity() int { return len(a.slots) }

// FreeCount returns how many slots are on the free list.
func (a *Arena) FreeCount() int { return a.freeCount }

// QueueLen returns how many slots are enqueued awaiting service.
func (a *Arena) QueueLen() int { return a.queueLen }

// Slot returns the record for h. The caller must hold h checked out or be
// inside the listener's critical section.
func (a *Arena) Slot(h Handle) *Slot { return &a.slots[h] }

// Checkout removes and returns the free-list head, reporting exhaustion when
// no slot is available.
func (a *Arena) Checkout() (Handle, bool) {
	if a.free == none {
		return none, false
	}
	h := a.free
	a.free = a.slots[h].next
	a.slots[h].next = none
	a.freeCount--
	return h, true
}

// Recycle clears a slot and pushes it back onto the free list.
func (a *Arena) Recycle(h Handle) {
	a.slots[h].reset()
	a.slots[h].next = a.free
	a.free = h
	a.freeCount++
}

// PushTail appends a checked-out slot to the queue tail.
func (a *Arena) PushTail(h Handle) {
	a.slots[h].next = none
	if a.tail == none {
		a.head = h
	} else {
		a.slots[a.tail].next = h
	}
	a.tail = h
	a.queueLen++
}

// PopHead removes and returns the queue head.
func (a *Arena) PopHead() (Handle, bool) {
	if a.head == none {
		return none, false
	}
	h := a.head
	a.head = a.slots[h].next
	if a.head == none {
		a.tail = none
	}
	a.slots[h].next = none
	a.queueLen--
	return h, true
}
