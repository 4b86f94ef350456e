package test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/ava12/ucum"
)

func fatalf(t *testing.T, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		fatalf(t, message, params...)
	}
}

func Expect(t *testing.T, cond bool, expected, got any) {
	t.Helper()
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectString(t *testing.T, expected, got string) {
	t.Helper()
	Expect(t, expected == got, fmt.Sprintf("%q", expected), fmt.Sprintf("%q", got))
}

// ExpectErrorCode fails unless e is (or wraps) *ucum.Error with given code.
func ExpectErrorCode(t *testing.T, expected int, e error) *ucum.Error {
	t.Helper()
	var ee *ucum.Error
	if e != nil && errors.As(e, &ee) && ee.Code == expected {
		return ee
	}

	fatalf(t, "expecting error code %d, got %v", expected, e)
	return nil
}

// ExpectErrorAt fails unless e is *ucum.Error with given code and offset.
func ExpectErrorAt(t *testing.T, expected, offset int, e error) {
	t.Helper()
	ee := ExpectErrorCode(t, expected, e)
	if ee != nil && ee.Offset != offset {
		fatalf(t, "expecting error at offset %d, got %d (%s)", offset, ee.Offset, ee.Message)
	}
}
