// Package validation turns JSON request bodies into checked note fields.
//
// Field problems are collected into Errors, keyed by field name, so a single
// response can report every invalid field at once.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"notes/notes/sources/psql/models"
)

const (
	MsgTitleEmpty = "Title must not be empty."
	MsgRequired   = "This field is required."
	MsgNull       = "This field may not be null."
	MsgNotString  = "Not a valid string."
	MsgNoData     = "No data provided."
	NonFieldKey   = "non_field_errors"
)

var MsgTitleTooLong = fmt.Sprintf("Ensure this field has no more than %d characters.", models.TitleMaxLength)

var ErrEmptyTitle = errors.New(MsgTitleEmpty)

// Errors maps a field name to its validation messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ParseError reports a body that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "JSON parse error - " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CleanTitle trims surrounding whitespace and rejects blank titles.
func CleanTitle(value string) (string, error) {
	title := strings.TrimSpace(value)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

// NoteInput holds the writable note fields present in a request. A nil
// pointer means the field was not supplied.
type NoteInput struct {
	Title   *string
	Content *string
}

// Columns maps the supplied fields to database columns.
func (in NoteInput) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if in.Title != nil {
		cols["title"] = *in.Title
	}
	if in.Content != nil {
		cols["content"] = *in.Content
	}
	return cols
}

// DecodeNote reads a note body. With partial set, omitted fields are left out
// instead of being reported; fields that are present are always checked.
// Unknown and read-only fields (id, created_at, updated_at) are ignored.
func DecodeNote(body io.Reader, partial bool) (NoteInput, error) {
	var in NoteInput

	fields, err := decodeObject(body)
	if err != nil {
		return in, err
	}

	errs := Errors{}
	if raw, ok := fields["title"]; ok {
		if s, msg := decodeString(raw); msg != "" {
			errs.Add("title", msg)
		} else if title, err := CleanTitle(s); err != nil {
			errs.Add("title", err.Error())
		} else if utf8.RuneCountInString(title) > models.TitleMaxLength {
			errs.Add("title", MsgTitleTooLong)
		} else {
			in.Title = &title
		}
	} else if !partial {
		errs.Add("title", MsgRequired)
	}

	if raw, ok := fields["content"]; ok {
		if s, msg := decodeString(raw); msg != "" {
			errs.Add("content", msg)
		} else {
			in.Content = &s
		}
	}

	if err := errs.Err(); err != nil {
		return NoteInput{}, err
	}
	return in, nil
}

func decodeObject(body io.Reader) (map[string]json.RawMessage, error) {
	var raw json.RawMessage
	if body != nil {
		dec := json.NewDecoder(body)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: err}
		}
		if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
			if err == nil {
				err = errors.New("extra data after JSON value")
			}
			return nil, &ParseError{Err: err}
		}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	switch raw[0] {
	case '{':
		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, &ParseError{Err: err}
		}
		return fields, nil
	case 'n':
		return nil, Errors{NonFieldKey: {MsgNoData}}
	default:
		msg := fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonKind(raw))
		return nil, Errors{NonFieldKey: {msg}}
	}
}

// decodeString returns the string value of raw, or the field message
// explaining why it is not one.
func decodeString(raw json.RawMessage) (string, string) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return "", MsgNull
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", MsgNotString
	}
	return s, ""
}

func jsonKind(raw json.RawMessage) string {
	switch raw[0] {
	case '[':
		return "list"
	case '"':
		return "str"
	case 't', 'f':
		return "bool"
	default:
		if bytes.ContainsAny(raw, ".eE") {
			return "float"
		}
		return "int"
	}
}
