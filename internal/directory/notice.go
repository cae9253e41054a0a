package directory

import "time"

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 3 * time.Second

// Category classifies a notice for display.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryInfo    Category = "info"
	CategoryError   Category = "error"
)

// Notice is a transient message shown after a mutation.
type Notice struct {
	Message  string
	Category Category
}

// showNotice replaces the current notice and schedules its removal.
// A pending removal for an older notice is cancelled. Caller holds c.mu.
func (c *Controller) showNotice(message string, category Category) {
	c.state.Notice = &Notice{Message: message, Category: category}

	if c.noticeTimer != nil {
		c.noticeTimer.Stop()
	}
	c.noticeGen++
	gen := c.noticeGen
	c.noticeTimer = c.clock.AfterFunc(c.noticeTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.noticeGen == gen {
			c.state.Notice = nil
			c.noticeTimer = nil
		}
	})
}
