//go:build !linux

package mainloop

// Without a portable thread id, re-entrant calls from the loop cannot be
// detected; Do always queues.
const threadAffinity = false

func currentThreadID() int {
	return 0
}
