package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/templata/go-profilegen/pkg/fault"
	"github.com/templata/go-profilegen/pkg/profile"
	"github.com/templata/go-profilegen/pkg/schema"
	"github.com/templata/go-profilegen/pkg/upload"
)

// UploadStatus tracks the upload lifecycle of a file-set field.
type UploadStatus string

const (
	StatusIdle      UploadStatus = "idle"
	StatusUploading UploadStatus = "uploading"
	StatusDone      UploadStatus = "done"
	StatusFailed    UploadStatus = "failed"
)

// Engine collects answers for one form instance: it validates values against
// the schema, fans out file uploads, and assembles the final submission
// payload. One engine serves one logical consumer; it is safe against the
// engine's own upload goroutines but not meant to be shared across flows.
//
// The engine never talks to the persistence service. Submit returns the
// payload and leaves transport to the caller.
type Engine struct {
	schema   schema.Schema
	uploader upload.Uploader

	mu       sync.Mutex
	answers  map[string]*answer
	inFlight bool
}

// answer is the transient per-field state, created at engine construction
// and discarded with the engine.
type answer struct {
	field schema.Field
	text  string
	batch *batch
}

// batch tracks one accepted file selection. A new accepted selection
// replaces the field's batch wholesale; superseded batches finish their
// uploads but their results are discarded.
type batch struct {
	urls      []string
	completed []bool
	failed    bool
	remaining int
	settled   chan struct{}
}

func (b *batch) collected() []string {
	urls := make([]string, 0, len(b.urls))
	for idx, done := range b.completed {
		if done {
			urls = append(urls, b.urls[idx])
		}
	}
	return urls
}

// Option configures an Engine.
type Option func(*Engine)

// WithUploader wires the storage collaborator used for file-set fields.
func WithUploader(uploader upload.Uploader) Option {
	return func(e *Engine) {
		e.uploader = uploader
	}
}

// New constructs an engine for the given schema, with one pending answer per
// field.
func New(s schema.Schema, options ...Option) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		schema:  s,
		answers: make(map[string]*answer, len(s.Fields)),
	}
	for _, field := range s.Fields {
		e.answers[field.Name] = &answer{field: field}
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Schema returns the schema this engine was built from.
func (e *Engine) Schema() schema.Schema {
	return e.schema
}

// SetValue records a free-text answer. Unknown fields and fields whose kind
// disallows free text yield an InvalidField fault.
func (e *Engine) SetValue(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ans, ok := e.answers[name]
	if !ok {
		return fault.ForField(fault.InvalidField, name, "not in schema")
	}
	if !ans.field.Kind.AcceptsText() {
		return fault.ForField(fault.InvalidField, name, "does not accept free text")
	}
	ans.text = value
	return nil
}

// Value returns the current text answer for a field.
func (e *Engine) Value(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ans, ok := e.answers[name]; ok {
		return ans.text
	}
	return ""
}

// SelectFiles validates a file selection against the field's constraints and
// starts uploading each accepted file concurrently. A rejected selection
// leaves any previously accepted files untouched; an accepted one replaces
// them. Final URL order follows selection order, not completion order.
func (e *Engine) SelectFiles(ctx context.Context, name string, files []upload.File) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ans, ok := e.answers[name]
	if !ok {
		return fault.ForField(fault.InvalidField, name, "not in schema")
	}
	field := ans.field
	if field.Kind != schema.KindFileSet {
		return fault.ForField(fault.InvalidField, name, "does not accept files")
	}
	if e.uploader == nil {
		return errors.New("form: no uploader configured")
	}
	if len(files) == 0 {
		return fault.ForField(fault.InvalidField, name, "empty file selection")
	}
	if len(files) > field.Files.MaxCount {
		return fault.ForField(fault.TooManyFiles, name,
			"selection exceeds max count")
	}
	for _, file := range files {
		if !field.Files.Accepts(file.MediaType) {
			return fault.ForField(fault.TypeMismatch, name,
				"file "+file.Name+" has media type "+file.MediaType)
		}
	}

	b := &batch{
		urls:      make([]string, len(files)),
		completed: make([]bool, len(files)),
		remaining: len(files),
		settled:   make(chan struct{}),
	}
	ans.batch = b
	for idx, file := range files {
		go e.uploadOne(ctx, b, idx, file)
	}
	return nil
}

// uploadOne uploads a single file and records the result under its original
// selection index. One failure marks the batch failed without touching
// sibling uploads.
func (e *Engine) uploadOne(ctx context.Context, b *batch, idx int, file upload.File) {
	url, err := e.uploader.Upload(ctx, file)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		b.failed = true
	} else {
		b.urls[idx] = url
		b.completed[idx] = true
	}
	b.remaining--
	if b.remaining == 0 {
		close(b.settled)
	}
}

// Status reports the upload lifecycle of a file-set field.
func (e *Engine) Status(name string) UploadStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	ans, ok := e.answers[name]
	if !ok || ans.batch == nil {
		return StatusIdle
	}
	switch {
	case ans.batch.remaining > 0:
		return StatusUploading
	case ans.batch.failed:
		return StatusFailed
	default:
		return StatusDone
	}
}

// URLs returns the uploaded URLs collected so far for a field, in selection
// order.
func (e *Engine) URLs(name string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ans, ok := e.answers[name]
	if !ok || ans.batch == nil {
		return nil
	}
	return ans.batch.collected()
}

// ClearFiles discards a field's file selection, including a failed one, so
// the caller can retry with a fresh selection.
func (e *Engine) ClearFiles(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ans, ok := e.answers[name]
	if !ok {
		return fault.ForField(fault.InvalidField, name, "not in schema")
	}
	ans.batch = nil
	return nil
}

// Submit validates the collected answers and assembles the submission
// payload. It blocks while uploads are in flight, fails fast on a failed
// upload that was not retried or cleared, and rejects reentrant calls.
// Optional fields with no value are omitted from the payload.
func (e *Engine) Submit(ctx context.Context) (profile.Payload, error) {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return nil, fault.New(fault.SubmissionInFlight, "a submission is already outstanding")
	}
	e.inFlight = true

	if name, failed := e.failedFieldLocked(); failed {
		e.inFlight = false
		e.mu.Unlock()
		return nil, fault.ForField(fault.UploadsPending, name, "retry or clear the failed upload")
	}
	pending := e.pendingBatchesLocked()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inFlight = false
		e.mu.Unlock()
	}()

	for _, b := range pending {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-b.settled:
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if name, failed := e.failedFieldLocked(); failed {
		return nil, fault.ForField(fault.UploadsPending, name, "retry or clear the failed upload")
	}

	payload := profile.Payload{}
	for _, field := range e.schema.Fields {
		ans := e.answers[field.Name]
		if field.Kind == schema.KindFileSet {
			var urls []string
			if ans.batch != nil {
				urls = ans.batch.collected()
			}
			if len(urls) == 0 {
				if field.Required {
					return nil, fault.ForField(fault.MissingRequired, field.Name, "at least one file is required")
				}
				continue
			}
			payload[field.Name] = profile.FilesValue(urls...)
			continue
		}
		if strings.TrimSpace(ans.text) == "" {
			if field.Required {
				return nil, fault.ForField(fault.MissingRequired, field.Name, "a value is required")
			}
			continue
		}
		payload[field.Name] = profile.TextValue(ans.text)
	}
	return payload, nil
}

func (e *Engine) failedFieldLocked() (string, bool) {
	for _, field := range e.schema.Fields {
		ans := e.answers[field.Name]
		if ans.batch != nil && ans.batch.failed {
			return field.Name, true
		}
	}
	return "", false
}

func (e *Engine) pendingBatchesLocked() []*batch {
	var pending []*batch
	for _, field := range e.schema.Fields {
		ans := e.answers[field.Name]
		if ans.batch != nil && ans.batch.remaining > 0 {
			pending = append(pending, ans.batch)
		}
	}
	return pending
}
