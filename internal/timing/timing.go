// Package timing logs startup checkpoints (config load, workout parse,
// compile) when WODTIMER_DEBUG_TIMING=1.
package timing

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu        sync.Mutex
	enabled   bool
	out       io.Writer = os.Stderr
	now                 = time.Now
	startTime time.Time
	lastTime  time.Time
)

func init() {
	if os.Getenv("WODTIMER_DEBUG_TIMING") == "1" {
		enable()
	}
}

func enable() {
	enabled = true
	startTime = now()
	lastTime = startTime
}

// Log writes a checkpoint with the time since the previous one and since
// start. It is a no-op unless WODTIMER_DEBUG_TIMING=1.
func Log(label string) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	t := now()
	fmt.Fprintf(out, "[TIMING] %s: +%dms (total: %dms)\n",
		label, t.Sub(lastTime).Milliseconds(), t.Sub(startTime).Milliseconds())
	lastTime = t
}
