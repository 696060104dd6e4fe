package store

type subscriber struct {
	ch   chan Snapshot
	last uint64
	sent bool
}

// offer replaces any undelivered snapshot with snap. Older versions than
// the last one offered are ignored. Callers hold subsMu.
func (sub *subscriber) offer(snap Snapshot) {
	if sub.sent && snap.Version <= sub.last {
		return
	}

	select {
	case <-sub.ch:
	default:
	}
	sub.ch <- snap

	sub.last = snap.Version
	sub.sent = true
}

// Subscribe returns a channel that always holds the latest snapshot not yet
// received. The current snapshot is delivered immediately. The returned
// func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++

	sub := &subscriber{ch: make(chan Snapshot, 1)}
	s.subs[id] = sub
	s.subsCount.Add(1)

	sub.offer(s.Snapshot())

	cancel := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()

		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			s.subsCount.Add(-1)
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// broadcast hands snap to every subscriber
func (s *Store) broadcast(snap *Snapshot) {
	if snap == nil {
		return
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, sub := range s.subs {
		sub.offer(*snap)
	}
}
