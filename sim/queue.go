// Implements the ReadyQueue, which holds processes waiting for the CPU.
// Processes are enqueued on arrival and after preemption.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of runnable processes with exact membership tracking.
// A process can be in the queue at most once; Enqueue panics on a duplicate.
type ReadyQueue struct {
	queue  []*Process        // FIFO queue of processes
	member map[*Process]bool // processes currently in queue
}

// NewReadyQueue creates an empty ReadyQueue.
func NewReadyQueue() *ReadyQueue {
	return &ReadyQueue{member: make(map[*Process]bool)}
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	if rq.member[p] {
		panic(fmt.Sprintf("Enqueue: process %d already queued", p.ID))
	}
	rq.queue = append(rq.queue, p)
	rq.member[p] = true
}

// Dequeue removes the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	p := rq.queue[0]
	rq.queue = rq.queue[1:]
	delete(rq.member, p)
	return p
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Contains reports whether p is currently queued.
func (rq *ReadyQueue) Contains(p *Process) bool {
	return rq.member[p]
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (rq *ReadyQueue) Items() []*Process {
	return rq.queue
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprint(p.ID))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
