package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultilevelQueue_PopHighest_ServesLowestLevelFirst(t *testing.T) {
	// GIVEN processes at levels 2, 0, 2, 1
	mq := NewMultilevelQueue(3)
	a, b, c, d := newTestProcess(1, 0, 1), newTestProcess(2, 0, 1), newTestProcess(3, 0, 1), newTestProcess(4, 0, 1)
	mq.Push(a, 2)
	mq.Push(b, 0)
	mq.Push(c, 2)
	mq.Push(d, 1)
	assert.Equal(t, "L0[2] L1[4] L2[1 3]", mq.String())

	// WHEN popping until empty
	var ids, levels []int
	for {
		p, level, ok := mq.PopHighest()
		if !ok {
			break
		}
		ids = append(ids, p.ID)
		levels = append(levels, level)
	}

	// THEN level 0 is served first and each level is FIFO
	assert.Equal(t, []int{2, 4, 1, 3}, ids)
	assert.Equal(t, []int{0, 1, 2, 2}, levels)
	assert.Equal(t, 0, mq.Len())
}

func TestMultilevelQueue_Push_SetsQueueLevel(t *testing.T) {
	mq := NewMultilevelQueue(4)
	p := newTestProcess(1, 0, 1)
	mq.Push(p, 3)

	assert.Equal(t, 3, p.QueueLevel)
	assert.Equal(t, 3, mq.LevelOf(p))
	assert.True(t, mq.Contains(p))
	assert.Equal(t, 1, mq.LevelLen(3))
}

func TestMultilevelQueue_LevelOf_NotQueued_ReturnsMinusOne(t *testing.T) {
	mq := NewMultilevelQueue(2)
	assert.Equal(t, -1, mq.LevelOf(newTestProcess(1, 0, 1)))
}

func TestMultilevelQueue_Push_Duplicate_Panics(t *testing.T) {
	// GIVEN a process queued at level 0
	mq := NewMultilevelQueue(2)
	p := newTestProcess(1, 0, 1)
	mq.Push(p, 0)

	// WHEN it is pushed again at any level
	// THEN it panics: a process is in at most one queue
	assert.Panics(t, func() { mq.Push(p, 1) })
	assert.Panics(t, func() { mq.Push(p, 0) })
}

func TestMultilevelQueue_Push_OutOfRange_Panics(t *testing.T) {
	mq := NewMultilevelQueue(2)
	assert.Panics(t, func() { mq.Push(newTestProcess(1, 0, 1), 2) })
	assert.Panics(t, func() { mq.Push(newTestProcess(2, 0, 1), -1) })
}

func TestNewMultilevelQueue_ZeroLevels_Panics(t *testing.T) {
	assert.Panics(t, func() { NewMultilevelQueue(0) })
}

func TestMultilevelQueue_Move_RemovesFromMiddle(t *testing.T) {
	// GIVEN [1 2 3] at level 2 and [4] at level 1
	mq := NewMultilevelQueue(3)
	procs := []*Process{newTestProcess(1, 0, 1), newTestProcess(2, 0, 1), newTestProcess(3, 0, 1)}
	for _, p := range procs {
		mq.Push(p, 2)
	}
	four := newTestProcess(4, 0, 1)
	mq.Push(four, 1)

	// WHEN the middle process moves up one level
	mq.Move(procs[1], 1)

	// THEN it is appended behind 4 and removed from level 2 only
	require.Equal(t, 4, mq.Len())
	assert.Equal(t, []*Process{four, procs[1]}, mq.Level(1))
	assert.Equal(t, []*Process{procs[0], procs[2]}, mq.Level(2))
	assert.Equal(t, 1, procs[1].QueueLevel)
}

func TestMultilevelQueue_Move_NotQueued_Panics(t *testing.T) {
	mq := NewMultilevelQueue(2)
	assert.Panics(t, func() { mq.Move(newTestProcess(1, 0, 1), 0) })
}
