package dto

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

var ErrBadTime = errors.New("invalid date/time")

// datetime-local inputs send minutes; seconds and a space separator are accepted too.
var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseLocalTime reads a naive timestamp in the server's local zone.
func ParseLocalTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTime
}

type BorrowForm struct {
	Start time.Time
	End   time.Time
	Notes string
}

func ParseBorrowForm(r *http.Request) (BorrowForm, error) {
	start, err := ParseLocalTime(r.PostFormValue("start_time"))
	if err != nil {
		return BorrowForm{}, err
	}
	end, err := ParseLocalTime(r.PostFormValue("end_time"))
	if err != nil {
		return BorrowForm{}, err
	}
	return BorrowForm{Start: start, End: end, Notes: r.PostFormValue("notes")}, nil
}

type RejectForm struct {
	Reason string
}

func ParseRejectForm(r *http.Request) RejectForm {
	return RejectForm{Reason: r.PostFormValue("reason")}
}
