package client

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

const (
	detailField         = "detail"
	nonFieldErrorsField = "non_field_errors"
)

// errorMessage picks the message of a failed response body:
// detail, then the first non_field_errors entry, then the first entry of any
// other field's error list (fields in sorted order), then the status text.
func errorMessage(status int, body []byte) string {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := firstString(envelope[detailField]); msg != "" {
			return msg
		}
		if msg := firstString(envelope[nonFieldErrorsField]); msg != "" {
			return msg
		}

		fields := make([]string, 0, len(envelope))
		for k := range envelope {
			if k != detailField && k != nonFieldErrorsField {
				fields = append(fields, k)
			}
		}
		sort.Strings(fields)
		for _, f := range fields {
			var list []string
			if err := json.Unmarshal(envelope[f], &list); err != nil {
				continue
			}
			if msg := firstNonBlank(list); msg != "" {
				return msg
			}
		}
	}

	if text := http.StatusText(status); text != "" {
		return text
	}
	return UnexpectedMessage
}

// firstString accepts either a string or a list of strings.
func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return firstNonBlank(list)
	}
	return ""
}

func firstNonBlank(list []string) string {
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
