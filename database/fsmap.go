package database

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Helpers for reading loosely typed Firestore document data.

// IsFirestoreNotFound reports whether err is a Firestore NotFound status.
func IsFirestoreNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// RefID returns the document id behind a reference field. Plain strings
// (and "Users/<id>" paths) are accepted for documents written by older clients.
func RefID(v interface{}) string {
	switch t := v.(type) {
	case *firestore.DocumentRef:
		if t == nil {
			return ""
		}
		return t.ID
	case string:
		if i := strings.LastIndex(t, "/"); i >= 0 {
			return t[i+1:]
		}
		return t
	}
	return ""
}

// AsString returns the first non-empty string stored under any of keys.
func AsString(data map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch t := data[k].(type) {
		case string:
			if t != "" {
				return t
			}
		case int64:
			return strconv.FormatInt(t, 10)
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

// AsFloat reads numeric values stored as ints, floats or numeric strings.
func AsFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

// AsBool accepts booleans and the strings "true"/"false".
func AsBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

// AsTime reads timestamps and RFC 3339 / date-only strings.
func AsTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// AsMap returns v as a document map, or nil.
func AsMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}
