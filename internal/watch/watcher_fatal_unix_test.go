// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"fmt"
	"syscall"
	"testing"
)

func TestFatalWatchError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ENOSPC", syscall.ENOSPC, true},
		{"EMFILE", syscall.EMFILE, true},
		{"wrapped ENFILE", fmt.Errorf("inotify_add_watch: %w", syscall.ENFILE), true},
		{"EACCES", syscall.EACCES, false},
		{"generic", fmt.Errorf("queue overflow"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fatalWatchError(tt.err); got != tt.want {
				t.Errorf("fatalWatchError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
