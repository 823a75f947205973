package refresh

import "time"

type postedTask struct {
	delay time.Duration
	fn    func()
}

// fakeContainer is an in-memory container with a manual frame queue.
type fakeContainer struct {
	scrollY   int
	overflow  bool
	cancels   int
	queue     []postedTask
	onCancel  func()
	scrollTos int
}

func (f *fakeContainer) ScrollY() int        { return f.scrollY }
func (f *fakeContainer) ScrollBy(dy int)     { f.scrollY += dy }
func (f *fakeContainer) ScrollTo(y int)      { f.scrollY = y; f.scrollTos++ }
func (f *fakeContainer) CanOverscroll() bool { return f.overflow }

func (f *fakeContainer) CancelTouch() {
	f.cancels++
	if f.onCancel != nil {
		f.onCancel()
	}
}

func (f *fakeContainer) PostDelayed(d time.Duration, fn func()) {
	f.queue = append(f.queue, postedTask{delay: d, fn: fn})
}

// tick runs the tasks that were pending when it was called and returns how
// many ran.
func (f *fakeContainer) tick() int {
	pending := f.queue
	f.queue = nil
	for _, task := range pending {
		task.fn()
	}
	return len(pending)
}

// drain ticks until nothing is scheduled or limit frames have passed.
func (f *fakeContainer) drain(limit int) int {
	frames := 0
	for len(f.queue) > 0 && frames < limit {
		f.tick()
		frames++
	}
	return frames
}

type recordingListener struct {
	starts    []Mode
	completes int
}

func (l *recordingListener) OnRefreshStart(edge Mode) { l.starts = append(l.starts, edge) }
func (l *recordingListener) OnRefreshComplete()       { l.completes++ }

type recordingIndicator struct {
	pulling   []bool
	fractions []float64
	starts    int
	completes int
}

func (i *recordingIndicator) SetPulling(p bool)  { i.pulling = append(i.pulling, p) }
func (i *recordingIndicator) OnPulled(f float64) { i.fractions = append(i.fractions, f) }
func (i *recordingIndicator) OnRefreshStart()    { i.starts++ }
func (i *recordingIndicator) OnRefreshComplete() { i.completes++ }
