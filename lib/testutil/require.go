// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// RequireReceive returns the next value from ch, failing the test if
// none arrives within timeout or ch is closed first. The trailing
// arguments are a format string and its operands describing the wait.
//
//	err := testutil.RequireReceive(t, results, 30*time.Second, "worker %d", index)
func RequireReceive[T any](t interface {
	Helper()
	Fatalf(format string, args ...any)
}, ch <-chan T, timeout time.Duration, msgAndArgs ...any) T {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while %s", describe(msgAndArgs))
		}
		return value
	case <-timer.C:
		t.Fatalf("no value after %v while %s", timeout, describe(msgAndArgs))
	}
	panic("unreachable")
}

func describe(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "waiting on channel"
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprint(msgAndArgs...)
	}
	return "waiting for " + fmt.Sprintf(format, msgAndArgs[1:]...)
}
