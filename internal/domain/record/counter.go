package record

// Counter hands out sequential record ids. It is owned by a Book and
// only advanced after a successful create.
type Counter struct {
	next int
}

func NewCounter(start int) *Counter {
	return &Counter{next: start}
}

// Peek returns the value the next create will use.
func (c *Counter) Peek() int {
	return c.next
}

// Advance consumes the current value and returns it.
func (c *Counter) Advance() int {
	n := c.next
	c.next++
	return n
}
