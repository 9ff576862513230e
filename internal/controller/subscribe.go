package controller

// Subscribe registers an observer of state snapshots. The current state is
// delivered immediately; afterwards every published transition is offered
// through a buffer of one, so a slow observer sees the newest state rather
// than every intermediate one. The returned function unsubscribes and closes
// the channel.
func (c *Controller) Subscribe() (<-chan AuthState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubscriberID
	c.nextSubscriberID++
	ch := make(chan AuthState, 1)
	ch <- c.state
	c.subscribers[id] = ch

	unsubscribe := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// publishLocked records the current state in the history ring and fans it
// out to subscribers. Callers must hold c.mu.
func (c *Controller) publishLocked() {
	c.history.record(c.state)
	for _, ch := range c.subscribers {
		select {
		case ch <- c.state:
		default:
			// Slow subscriber: swap out the stale buffered snapshot so the
			// channel always carries the newest state.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- c.state:
			default:
			}
		}
	}
}
