package telemetry

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Async logger with a bounded queue so logging never blocks a handler that is
// mid-swap. The ring buffer backs the /tail command.

var (
	enableDebug atomic.Bool
	enableTrace atomic.Bool

	logCh chan entry
	once  sync.Once

	ringMu      sync.Mutex
	ring        []entry
	ringNext    int
	ringWrapped bool
)

const ringSize = 2000 // last 2k lines kept for /tail

type entry struct {
	at    time.Time
	level string
	msg   string
}

func Start() {
	once.Do(func() {
		logCh = make(chan entry, 8192)
		ring = make([]entry, ringSize)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "telemetry panic: %v\n", r)
				}
			}()
			for e := range logCh {
				ringMu.Lock()
				ring[ringNext] = e
				ringNext = (ringNext + 1) % ringSize
				if ringNext == 0 {
					ringWrapped = true
				}
				ringMu.Unlock()

				fmt.Printf("%s [%s] %s\n", e.at.Format("2006/01/02 15:04:05.000"), e.level, e.msg)
			}
		}()
	})
}

func Stop() {
	if logCh != nil {
		close(logCh)
	}
}

func EnableDebug(on bool) { enableDebug.Store(on) }
func DebugOn() bool       { return enableDebug.Load() }

func EnableTrace(on bool) { enableTrace.Store(on) }
func TraceOn() bool       { return enableTrace.Load() }

// Non-blocking enqueue; drop if saturated.
func enqueue(level, msg string) {
	e := entry{at: time.Now(), level: level, msg: msg}
	select {
	case logCh <- e:
	default:
		fmt.Fprintf(os.Stderr, "telemetry: buffer full, dropping log: %s\n", msg)
	}
}

func Infof(format string, args ...any) {
	enqueue("INFO", fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	enqueue("WARN", fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	enqueue("ERROR", fmt.Sprintf(format, args...))
}

// DEBUG only formats when enabled (zero cost when off).
func Debugf(format string, args ...any) {
	if !enableDebug.Load() {
		return
	}
	enqueue("DEBUG", fmt.Sprintf(format, args...))
}

// TRACE is for very noisy spots; off by default.
func Tracef(format string, args ...any) {
	if !enableTrace.Load() {
		return
	}
	enqueue("TRACE", fmt.Sprintf(format, args...))
}

// Tail returns up to n most recent log lines in chronological order.
func Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > ringSize {
		n = ringSize
	}
	ringMu.Lock()
	defer ringMu.Unlock()

	available := ringNext
	if ringWrapped {
		available = ringSize
	}
	if available == 0 {
		return nil
	}
	if n > available {
		n = available
	}

	out := make([]string, 0, n)
	start := (ringNext - n + ringSize) % ringSize
	for i := 0; i < n; i++ {
		e := ring[(start+i)%ringSize]
		if e.at.IsZero() {
			continue
		}
		out = append(out, fmt.Sprintf("%s [%s] %s", e.at.Format("15:04:05.000"), e.level, e.msg))
	}
	return out
}
