// Package form tracks the values and validation messages of one input form.
//
// Messages follow the wording browsers use for native constraint
// validation. A separate slot per field carries errors reported by the
// server, so either source can be replaced without touching the other.
package form

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
)

var ErrUnknownField = errors.New("unknown form field")

// Type is the input control type.
type Type string

const (
	TypeText     Type = "text"
	TypeEmail    Type = "email"
	TypePassword Type = "password"
	TypeURL      Type = "url"
)

// Constraints mirror the HTML attributes of an input. Zero lengths mean
// unbounded.
type Constraints struct {
	Type      Type
	Required  bool
	MinLength int
	MaxLength int
}

type Field struct {
	Name  string
	Label string
	Constraints
}

type Form struct {
	name   string
	fields []Field
	byName map[string]Field

	mu     sync.Mutex
	values map[string]string
	errs   map[string]string
	server map[string]string
}

func New(name string, fields ...Field) *Form {
	f := &Form{
		name:   name,
		fields: fields,
		byName: make(map[string]Field, len(fields)),
	}
	for _, fd := range fields {
		f.byName[fd.Name] = fd
	}
	f.Reset()
	return f
}

func (f *Form) Name() string { return f.name }

// Fields returns the field definitions in declaration order.
func (f *Form) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// Change sets the value of field and recomputes that field's message.
func (f *Form) Change(field, value string) error {
	fd, ok := f.byName[field]
	if !ok {
		return fmt.Errorf("%s: %q: %w", f.name, field, ErrUnknownField)
	}
	msg := Message(fd.Constraints, value)

	f.mu.Lock()
	f.values[field] = value
	f.errs[field] = msg
	f.mu.Unlock()
	return nil
}

func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.values)
}

// Error returns the native validation message of field, "" when valid.
func (f *Form) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[field]
}

func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errs)
}

// CanSubmit is false while any field holds a validation message.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range f.errs {
		if msg != "" {
			return false
		}
	}
	return true
}

// Submit validates every field the way a native form submission does and
// returns a copy of the values. Invalid forms yield common.ErrValidation.
func (f *Form) Submit() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var first string
	for _, fd := range f.fields {
		msg := Message(fd.Constraints, f.values[fd.Name])
		f.errs[fd.Name] = msg
		if msg != "" && first == "" {
			first = fd.Name + ": " + msg
		}
	}
	if first != "" {
		return nil, fmt.Errorf("%s: %s: %w", f.name, first, common.ErrValidation)
	}
	return maps.Clone(f.values), nil
}

// SetServerError stores msg in field's server slot; "" clears it.
func (f *Form) SetServerError(field, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg == "" {
		delete(f.server, field)
		return
	}
	f.server[field] = msg
}

func (f *Form) ServerError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.server[field]
}

// DisplayError is what the UI shows under field: the native message when
// there is one, the server message otherwise.
func (f *Form) DisplayError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg := f.errs[field]; msg != "" {
		return msg
	}
	return f.server[field]
}

// Reset clears values, messages and server errors.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string, len(f.fields))
	f.errs = make(map[string]string, len(f.fields))
	f.server = map[string]string{}
	for _, fd := range f.fields {
		f.values[fd.Name] = ""
		f.errs[fd.Name] = ""
	}
}
