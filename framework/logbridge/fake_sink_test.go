package logbridge

import "sync"

type attachment struct {
	title, mediaType, content string
}

type fakeSink struct {
	attachments []attachment
	lock        sync.Mutex
}

func (f *fakeSink) AddAttachment(title, mediaType, content string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.attachments = append(f.attachments, attachment{title, mediaType, content})
}

func (f *fakeSink) all() []attachment {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]attachment(nil), f.attachments...)
}

func (f *fakeSink) contents() []string {
	var ret []string
	for _, a := range f.all() {
		ret = append(ret, a.content)
	}
	return ret
}

type panickingSink struct{}

func (panickingSink) AddAttachment(string, string, string) { panic("no active test") }
