package tui

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameTaskMsg fires a task posted through the frame queue.
type frameTaskMsg struct {
	id uint64
}

// frameQueue runs post-delayed work on the Bubble Tea loop. PostDelayed
// only records the task; Flush turns the recorded tasks into tea.Tick
// commands and the task runs when its frameTaskMsg comes back to Update.
type frameQueue struct {
	next  uint64
	tasks map[uint64]func()
	ticks []tea.Cmd
}

func newFrameQueue() *frameQueue {
	return &frameQueue{tasks: make(map[uint64]func())}
}

func (q *frameQueue) PostDelayed(d time.Duration, fn func()) {
	q.next++
	id := q.next
	q.tasks[id] = fn
	q.ticks = append(q.ticks, tea.Tick(d, func(time.Time) tea.Msg {
		return frameTaskMsg{id: id}
	}))
}

// Flush returns the ticks posted since the last call.
func (q *frameQueue) Flush() tea.Cmd {
	if len(q.ticks) == 0 {
		return nil
	}
	cmds := q.ticks
	q.ticks = nil
	return tea.Batch(cmds...)
}

// Run executes and forgets a posted task. Unknown ids are ignored.
func (q *frameQueue) Run(id uint64) {
	fn, ok := q.tasks[id]
	if !ok {
		return
	}
	delete(q.tasks, id)
	fn()
}

// Pending returns the ids of tasks not yet run, oldest first.
func (q *frameQueue) Pending() []uint64 {
	ids := make([]uint64, 0, len(q.tasks))
	for id := range q.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
