//go:build linux

package mainloop

import "golang.org/x/sys/unix"

const threadAffinity = true

func currentThreadID() int {
	return unix.Gettid()
}
