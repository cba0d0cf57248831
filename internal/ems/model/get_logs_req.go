package model

import (
	"strings"
	"time"
)

// LogQuery is the normalised filter handed to the query engine.
type LogQuery struct {
	Name   string
	Action string
	From   *time.Time
	To     *time.Time
	Field  Field
}

// GetManagerLogsReq binds GET /api/admin/manager-logs.
type GetManagerLogsReq struct {
	Manager string `query:"manager" validate:"omitempty,max=100"`
	Action  string `query:"action" validate:"omitempty,max=100"`
	From    string `query:"from"`
	To      string `query:"to"`
	Field   string `query:"field"`

	query LogQuery
}

func (r *GetManagerLogsReq) Validate() error {
	r.Manager = strings.TrimSpace(r.Manager)
	r.Action = strings.TrimSpace(r.Action)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	q, err := buildLogQuery(r.Manager, r.From, r.To, r.Field)
	if err != nil {
		return err
	}
	q.Action = r.Action
	r.query = q
	return nil
}

// Query returns the filter built by Validate.
func (r *GetManagerLogsReq) Query() LogQuery {
	return r.query
}

// GetSelfLogsReq binds GET /api/admin/employee-update-logs.
type GetSelfLogsReq struct {
	Employee string `query:"employee" validate:"omitempty,max=100"`
	From     string `query:"from"`
	To       string `query:"to"`
	Field    string `query:"field"`

	query LogQuery
}

func (r *GetSelfLogsReq) Validate() error {
	r.Employee = strings.TrimSpace(r.Employee)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	q, err := buildLogQuery(r.Employee, r.From, r.To, r.Field)
	if err != nil {
		return err
	}
	r.query = q
	return nil
}

func (r *GetSelfLogsReq) Query() LogQuery {
	return r.query
}

func buildLogQuery(name, from, to, field string) (LogQuery, error) {
	q := LogQuery{Name: name}

	var err error
	if q.From, err = parseDate("from", from); err != nil {
		return q, err
	}
	if q.To, err = parseDate("to", to); err != nil {
		return q, err
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return q, badRequest("from must not be after to")
	}

	if field = strings.TrimSpace(field); field != "" {
		f, err := ParseField(field)
		if err != nil {
			return q, badRequest("Unknown field: " + field)
		}
		q.Field = f
	}
	return q, nil
}

// parseDate accepts RFC 3339 timestamps or plain dates (midnight UTC).
func parseDate(name, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, badRequest("Invalid date for " + name + ": " + s)
}
