package report

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink receives attachments. It is the outbound interface of the log bridge.
type Sink interface {
	AddAttachment(title, mediaType, content string)
}

// StepRecorder receives step boundaries.
type StepRecorder interface {
	StartStep(name string)
	StopStep(status Status)
}

type liveStep struct {
	name        string
	status      Status
	start, stop time.Time
	steps       []*liveStep
	attachments []Attachment
}

// TestCase is the report context for one running test. It is safe for concurrent use: log
// lines may arrive from any goroutine the test starts.
//
// Attachments and steps are added to the innermost step that is currently open, or to the
// test itself if no step is open.
type TestCase struct {
	uuid          string
	name          string
	fullName      string
	labels        []Label
	status        Status
	statusDetails StatusDetails
	start, stop   time.Time
	steps         []*liveStep
	attachments   []Attachment
	open          []*liveStep
	finished      bool
	now           func() time.Time
	lock          sync.Mutex
}

// NewTestCase starts a report for a test. The start time is taken now.
func NewTestCase(name, fullName string, labels ...Label) *TestCase {
	return newTestCase(name, fullName, time.Now, labels)
}

func newTestCase(name, fullName string, now func() time.Time, labels []Label) *TestCase {
	return &TestCase{
		uuid:     uuid.NewString(),
		name:     name,
		fullName: fullName,
		labels:   append([]Label(nil), labels...),
		start:    now(),
		now:      now,
	}
}

// UUID returns the unique identifier of this report.
func (c *TestCase) UUID() string { return c.uuid }

// AddLabel adds a label. Labels added after Finish are ignored.
func (c *TestCase) AddLabel(name, value string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.finished {
		c.labels = append(c.labels, Label{Name: name, Value: value})
	}
}

// AddAttachment implements Sink.
func (c *TestCase) AddAttachment(title, mediaType, content string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.finished {
		return
	}
	a := Attachment{Name: title, Type: mediaType, Content: content, Time: c.now()}
	if s := c.currentStep(); s != nil {
		s.attachments = append(s.attachments, a)
	} else {
		c.attachments = append(c.attachments, a)
	}
}

// StartStep implements StepRecorder.
func (c *TestCase) StartStep(name string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.finished {
		return
	}
	s := &liveStep{name: name, start: c.now()}
	if parent := c.currentStep(); parent != nil {
		parent.steps = append(parent.steps, s)
	} else {
		c.steps = append(c.steps, s)
	}
	c.open = append(c.open, s)
}

// StopStep implements StepRecorder. It closes the innermost open step; if no step is open it
// does nothing.
func (c *TestCase) StopStep(status Status) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if len(c.open) == 0 {
		return
	}
	s := c.open[len(c.open)-1]
	c.open = c.open[:len(c.open)-1]
	s.status = status
	s.stop = c.now()
}

// Finish sets the final status and freezes the report. Steps that are still open are closed as
// broken. Calling Finish more than once has no further effect.
func (c *TestCase) Finish(status Status, details StatusDetails) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.finished {
		return
	}
	now := c.now()
	for i := len(c.open) - 1; i >= 0; i-- {
		c.open[i].status = StatusBroken
		c.open[i].stop = now
	}
	c.open = nil
	c.status = status
	c.statusDetails = details
	c.stop = now
	c.finished = true
}

// Result returns a snapshot of the report. It can be called before Finish, in which case the
// status is empty and open steps have a zero stop time.
func (c *TestCase) Result() Result {
	c.lock.Lock()
	defer c.lock.Unlock()
	return Result{
		UUID:          c.uuid,
		Name:          c.name,
		FullName:      c.fullName,
		Labels:        append([]Label(nil), c.labels...),
		Status:        c.status,
		StatusDetails: c.statusDetails,
		Start:         c.start,
		Stop:          c.stop,
		Steps:         freezeSteps(c.steps),
		Attachments:   append([]Attachment(nil), c.attachments...),
	}
}

func (c *TestCase) currentStep() *liveStep {
	if len(c.open) == 0 {
		return nil
	}
	return c.open[len(c.open)-1]
}

func freezeSteps(steps []*liveStep) []Step {
	if len(steps) == 0 {
		return nil
	}
	ret := make([]Step, 0, len(steps))
	for _, s := range steps {
		ret = append(ret, Step{
			Name:        s.name,
			Status:      s.status,
			Start:       s.start,
			Stop:        s.stop,
			Steps:       freezeSteps(s.steps),
			Attachments: append([]Attachment(nil), s.attachments...),
		})
	}
	return ret
}
