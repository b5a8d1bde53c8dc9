package hal

import "time"

type systemClock struct {
	boot time.Time
}

func newSystemClock() *systemClock {
	return &systemClock{boot: time.Now()}
}

func (c *systemClock) Millis() uint32 {
	return uint32(time.Since(c.boot).Milliseconds())
}

func (c *systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
