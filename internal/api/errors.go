package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/apetrenko/jobport/internal/common"
)

// StatusError is returned for any non-2xx response. Detail carries the
// backend's JSON "detail" message when one was parseable, else "".
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// Is lets errors.Is(err, common.ErrUnauthorized) match a 401 and
// errors.Is(err, common.ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// ErrorDetail extracts the backend detail message from err, or returns
// fallback. Services use it to normalize failures into the human-readable
// messages they record and surface.
func ErrorDetail(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return fallback
}

// Retriable reports whether err is worth retrying: network failures and
// 5xx responses are, anything the backend rejected outright (4xx) is not.
func Retriable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return err != nil
}
