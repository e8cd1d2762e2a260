package report

import (
	"time"

	"golang.org/x/exp/slices"
)

// Status is the outcome of a test or a step.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
)

// Label is a name/value pair attached to a test, such as "suite" or "feature".
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attachment is a named piece of content added to a test or step.
type Attachment struct {
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// StatusDetails explains a non-passing status.
type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// Step is a frozen record of a named unit of test action.
type Step struct {
	Name        string       `json:"name"`
	Status      Status       `json:"status"`
	Start       time.Time    `json:"start"`
	Stop        time.Time    `json:"stop"`
	Steps       []Step       `json:"steps,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Result is an immutable snapshot of a TestCase.
type Result struct {
	UUID          string        `json:"uuid"`
	Name          string        `json:"name"`
	FullName      string        `json:"fullName"`
	Labels        []Label       `json:"labels,omitempty"`
	Status        Status        `json:"status"`
	StatusDetails StatusDetails `json:"statusDetails"`
	Start         time.Time     `json:"start"`
	Stop          time.Time     `json:"stop"`
	Steps         []Step        `json:"steps,omitempty"`
	Attachments   []Attachment  `json:"attachments,omitempty"`
}

// AllAttachments returns the attachments of the result and of all its steps, in the order they
// appear in the document: a container's own attachments come before those of its child steps.
func (r Result) AllAttachments() []Attachment {
	ret := append([]Attachment(nil), r.Attachments...)
	for _, s := range r.Steps {
		ret = s.appendAttachments(ret)
	}
	return ret
}

func (s Step) appendAttachments(into []Attachment) []Attachment {
	into = append(into, s.Attachments...)
	for _, c := range s.Steps {
		into = c.appendAttachments(into)
	}
	return into
}

// LabelValue returns the value of the first label with the given name, if any.
func (r Result) LabelValue(name string) (string, bool) {
	i := slices.IndexFunc(r.Labels, func(l Label) bool { return l.Name == name })
	if i < 0 {
		return "", false
	}
	return r.Labels[i].Value, true
}
