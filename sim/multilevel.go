package sim

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
)

// MultilevelQueue is a set of FIFO ready queues indexed by level, level 0 served first.
// Membership is tracked exactly: a process sits in at most one level at a time,
// and its current level is kept in Process.QueueLevel while queued.
type MultilevelQueue struct {
	levels []*doublylinkedlist.List
	member map[*Process]int // process -> level it is queued at
}

// NewMultilevelQueue creates a MultilevelQueue with n levels. Panics if n < 1.
func NewMultilevelQueue(n int) *MultilevelQueue {
	if n < 1 {
		panic(fmt.Sprintf("NewMultilevelQueue: need at least one level, got %d", n))
	}
	mq := &MultilevelQueue{
		levels: make([]*doublylinkedlist.List, n),
		member: make(map[*Process]int),
	}
	for i := range mq.levels {
		mq.levels[i] = doublylinkedlist.New()
	}
	return mq
}

// NumLevels returns the number of levels.
func (mq *MultilevelQueue) NumLevels() int {
	return len(mq.levels)
}

// Push appends p to the back of the given level.
// Panics if p is already queued or the level is out of range.
func (mq *MultilevelQueue) Push(p *Process, level int) {
	if level < 0 || level >= len(mq.levels) {
		panic(fmt.Sprintf("Push: level %d out of range [0, %d)", level, len(mq.levels)))
	}
	if cur, ok := mq.member[p]; ok {
		panic(fmt.Sprintf("Push: process %d already queued at level %d", p.ID, cur))
	}
	mq.levels[level].Add(p)
	mq.member[p] = level
	p.QueueLevel = level
}

// PopHighest removes the head of the first non-empty level.
// ok is false when every level is empty.
func (mq *MultilevelQueue) PopHighest() (p *Process, level int, ok bool) {
	for l, list := range mq.levels {
		if list.Empty() {
			continue
		}
		v, _ := list.Get(0)
		list.Remove(0)
		p = v.(*Process)
		delete(mq.member, p)
		return p, l, true
	}
	return nil, 0, false
}

// Contains reports whether p is queued at any level.
func (mq *MultilevelQueue) Contains(p *Process) bool {
	_, ok := mq.member[p]
	return ok
}

// LevelOf returns the level p is queued at, or -1 when it is not queued.
func (mq *MultilevelQueue) LevelOf(p *Process) int {
	if l, ok := mq.member[p]; ok {
		return l
	}
	return -1
}

// Move removes p from its current level and appends it to the back of level.
// Panics if p is not queued.
func (mq *MultilevelQueue) Move(p *Process, level int) {
	cur, ok := mq.member[p]
	if !ok {
		panic(fmt.Sprintf("Move: process %d is not queued", p.ID))
	}
	list := mq.levels[cur]
	list.Remove(list.IndexOf(p))
	delete(mq.member, p)
	mq.Push(p, level)
}

// Len returns the total number of queued processes.
func (mq *MultilevelQueue) Len() int {
	return len(mq.member)
}

// LevelLen returns the number of processes queued at level.
func (mq *MultilevelQueue) LevelLen(level int) int {
	return mq.levels[level].Size()
}

// Level returns the processes queued at level, front first.
func (mq *MultilevelQueue) Level(level int) []*Process {
	values := mq.levels[level].Values()
	procs := make([]*Process, len(values))
	for i, v := range values {
		procs[i] = v.(*Process)
	}
	return procs
}

func (mq *MultilevelQueue) String() string {
	var sb strings.Builder
	for l := range mq.levels {
		if l > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "L%d[", l)
		for i, p := range mq.Level(l) {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprint(&sb, p.ID)
		}
		sb.WriteString("]")
	}
	return sb.String()
}
