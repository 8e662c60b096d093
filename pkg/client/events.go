package client

import "sync"

// ProfileEvent signals that the profile image for an employee changed
// through this client.
type ProfileEvent struct {
	BioID    int
	Filename string
}

// ProfileEvents fans profile changes out to subscribers. Slow subscribers
// drop events rather than block the publisher.
type ProfileEvents struct {
	mu   sync.Mutex
	subs map[chan ProfileEvent]struct{}
}

func NewProfileEvents() *ProfileEvents {
	return &ProfileEvents{subs: make(map[chan ProfileEvent]struct{})}
}

// Subscribe returns a channel of events and a function to stop receiving.
func (p *ProfileEvents) Subscribe() (<-chan ProfileEvent, func()) {
	ch := make(chan ProfileEvent, 8)

	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		if _, ok := p.subs[ch]; ok {
			delete(p.subs, ch)
			close(ch)
		}
		p.mu.Unlock()
	}

	return ch, cancel
}

func (p *ProfileEvents) publish(event ProfileEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for ch := range p.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
