package types

import "fmt"

// File operations that can fail while streaming a file into the digest.
const (
	OpOpen = "open"
	OpRead = "read"
)

// FileError records a per-file failure that was skipped during a run.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	verb := "reading"
	if e.Op == OpOpen {
		verb = "opening"
	}
	return fmt.Sprintf("error %s file: %s (%v)", verb, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// EventKind identifies a point in the pipeline that a progress consumer can react to.
type EventKind string

const (
	// EventScanStart is sent before the tree walk begins.
	EventScanStart EventKind = "scan-start"
	// EventScanDone carries the number of files that will be hashed in Total.
	EventScanDone EventKind = "scan-done"
	// EventFileStart is sent before a file is opened.
	EventFileStart EventKind = "file-start"
	// EventFileDone is sent after a file was processed, successfully or not.
	EventFileDone EventKind = "file-done"
	// EventFileError accompanies a FileError before the matching EventFileDone.
	EventFileError EventKind = "file-error"
	// EventFinish is sent once the digest has been finalized.
	EventFinish EventKind = "finish"
)

// Event reports pipeline progress. Path is empty for run-level events.
type Event struct {
	Kind  EventKind
	Path  string
	Index int
	Total int
	Err   error
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a plain function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) {
	f(evt)
}
