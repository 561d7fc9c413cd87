package logger

import (
	"fmt"
	"sync"
)

// Record is one captured log call.
type Record struct {
	Error  bool
	Module string
	Event  string
	Fields []Field
}

// Value returns the value of key, or nil.
func (r Record) Value(key string) any {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

func (r Record) String() string { return r.Module + ": " + Render(r.Event, r.Fields...) }

// Recorder keeps every call in memory. Printf style calls are stored with an empty module.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *Recorder) Infof(format string, v ...any) {
	r.add(Record{Event: fmt.Sprintf(format, v...)})
}

func (r *Recorder) Errorf(format string, v ...any) {
	r.add(Record{Error: true, Event: fmt.Sprintf(format, v...)})
}

func (r *Recorder) Event(module, event string, fields ...Field) {
	r.add(Record{Module: module, Event: event, Fields: fields})
}

func (r *Recorder) ErrorEvent(module, event string, fields ...Field) {
	r.add(Record{Error: true, Module: module, Event: event, Fields: fields})
}

// Records returns a copy of everything logged so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Find returns the first record for module and event.
func (r *Recorder) Find(module, event string) (Record, bool) {
	for _, rec := range r.Records() {
		if rec.Module == module && rec.Event == event {
			return rec, true
		}
	}
	return Record{}, false
}

type nop struct{}

// Nop discards everything.
func Nop() Logger { return nop{} }

func (nop) Infof(string, ...any)                {}
func (nop) Errorf(string, ...any)               {}
func (nop) Event(string, string, ...Field)      {}
func (nop) ErrorEvent(string, string, ...Field) {}
