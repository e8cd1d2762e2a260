// Package allure writes finished test reports as an Allure 2 results directory, which the
// Allure command-line tool (or any CI plugin for it) can turn into an HTML report.
package allure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stepreport/stepreport/framework/report"
)

const (
	resultFileSuffix     = "-result.json"
	attachmentFileSuffix = "-attachment"
	stageFinished        = "finished"
)

type resultJSON struct {
	UUID          string             `json:"uuid"`
	HistoryID     string             `json:"historyId"`
	Name          string             `json:"name"`
	FullName      string             `json:"fullName"`
	Status        report.Status      `json:"status"`
	StatusDetails *statusDetailsJSON `json:"statusDetails,omitempty"`
	Stage         string             `json:"stage"`
	Start         int64              `json:"start"`
	Stop          int64              `json:"stop"`
	Labels        []report.Label     `json:"labels"`
	Steps         []stepJSON         `json:"steps"`
	Attachments   []attachmentJSON   `json:"attachments"`
}

type statusDetailsJSON struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

type stepJSON struct {
	Name        string           `json:"name"`
	Status      report.Status    `json:"status"`
	Stage       string           `json:"stage"`
	Start       int64            `json:"start"`
	Stop        int64            `json:"stop"`
	Steps       []stepJSON       `json:"steps"`
	Attachments []attachmentJSON `json:"attachments"`
}

type attachmentJSON struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Writer writes results into a directory. It is not safe for concurrent use.
type Writer struct {
	dir string
}

// NewWriter creates the directory if necessary.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("cannot create Allure results directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) Dir() string { return w.dir }

// Write stores one result file, plus one file per attachment.
func (w *Writer) Write(r report.Result) error {
	out := resultJSON{
		UUID:      r.UUID,
		HistoryID: uuid.NewSHA1(uuid.NameSpaceURL, []byte(r.FullName)).String(),
		Name:      r.Name,
		FullName:  r.FullName,
		Status:    r.Status,
		Stage:     stageFinished,
		Start:     epochMillis(r.Start),
		Stop:      epochMillis(r.Stop),
		Labels:    append([]report.Label{}, r.Labels...),
	}
	if r.StatusDetails != (report.StatusDetails{}) {
		out.StatusDetails = &statusDetailsJSON{Message: r.StatusDetails.Message, Trace: r.StatusDetails.Trace}
	}
	var err error
	if out.Attachments, err = w.writeAttachments(r.Attachments); err != nil {
		return err
	}
	if out.Steps, err = w.convertSteps(r.Steps); err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.dir, r.UUID+resultFileSuffix), data, 0644) //nolint:gosec
}

func (w *Writer) convertSteps(steps []report.Step) ([]stepJSON, error) {
	ret := make([]stepJSON, 0, len(steps))
	for _, s := range steps {
		attachments, err := w.writeAttachments(s.Attachments)
		if err != nil {
			return nil, err
		}
		children, err := w.convertSteps(s.Steps)
		if err != nil {
			return nil, err
		}
		ret = append(ret, stepJSON{
			Name:        s.Name,
			Status:      s.Status,
			Stage:       stageFinished,
			Start:       epochMillis(s.Start),
			Stop:        epochMillis(s.Stop),
			Steps:       children,
			Attachments: attachments,
		})
	}
	return ret, nil
}

func (w *Writer) writeAttachments(attachments []report.Attachment) ([]attachmentJSON, error) {
	ret := make([]attachmentJSON, 0, len(attachments))
	for _, a := range attachments {
		source := uuid.NewString() + attachmentFileSuffix + extensionFor(a.Type)
		if err := os.WriteFile(filepath.Join(w.dir, source), []byte(a.Content), 0644); err != nil { //nolint:gosec
			return nil, fmt.Errorf("cannot write attachment %q: %w", a.Name, err)
		}
		ret = append(ret, attachmentJSON{Name: a.Name, Source: source, Type: a.Type})
	}
	return ret, nil
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "text/plain":
		return ".txt"
	case "application/json":
		return ".json"
	case "application/xml", "text/xml":
		return ".xml"
	default:
		return ""
	}
}

func epochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
