package utils

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

var ErrNoOffset = errors.New("timestamp has no timezone offset")

// Accepted layouts all carry an explicit zone, so wall-clock-only input never
// parses.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseTimestamp parses an RFC 3339 timestamp (seconds optional) and returns
// it in UTC, truncated to whole seconds as it is formatted on the way out.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	if _, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return time.Time{}, ErrNoOffset
	}
	if _, err := time.Parse("2006-01-02T15:04", raw); err == nil {
		return time.Time{}, ErrNoOffset
	}
	return time.Time{}, errors.New("invalid RFC 3339 timestamp")
}

// ParseLimit reads a list limit: absent, garbage or zero means the default,
// anything else is clamped to [1, MaxLimit].
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return DefaultLimit
	}
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// ParseID parses a positive integer identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Ptr:
			// Blank optional strings are treated as absent.
			if field.IsNil() || field.Elem().Kind() != reflect.String {
				continue
			}
			s := sanitizeString(field.Elem().String())
			if s == "" {
				field.Set(reflect.Zero(field.Type()))
				continue
			}
			field.Elem().SetString(s)

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
