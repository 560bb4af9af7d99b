package exceptions

import (
	"fmt"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	loc := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, loc.File, loc.Line, loc.FunctionName)
}

// BuildNewCustomError wraps err with a status code and both client and dev
// messages, recording the caller location. When err is itself a CustomError
// its locations are carried forward so the original origin survives wrapping.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	locations := []Location{getLocation(2)}
	if err != nil {
		if prev, ok := err.(*CustomError); ok {
			locations = append(locations, prev.Locations...)
		}
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     locations,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{File: "unknown", FunctionName: "unknown"}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
