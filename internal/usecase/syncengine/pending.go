package syncengine

import "github.com/google/uuid"

// pendingReads holds the latest read flag for ids whose Created event has not
// been seen yet, evicting the oldest id once full.
type pendingReads struct {
	limit  int
	values map[uuid.UUID]bool
	order  []uuid.UUID
}

func newPendingReads(limit int) *pendingReads {
	return &pendingReads{limit: limit, values: make(map[uuid.UUID]bool)}
}

func (p *pendingReads) put(id uuid.UUID, isRead bool) (evicted uuid.UUID) {
	if _, ok := p.values[id]; ok {
		p.values[id] = isRead
		return uuid.Nil
	}
	if len(p.order) >= p.limit {
		evicted = p.order[0]
		p.order = p.order[1:]
		delete(p.values, evicted)
	}
	p.values[id] = isRead
	p.order = append(p.order, id)
	return evicted
}

func (p *pendingReads) take(id uuid.UUID) (bool, bool) {
	v, ok := p.values[id]
	if !ok {
		return false, false
	}
	p.drop(id)
	return v, true
}

func (p *pendingReads) drop(id uuid.UUID) {
	if _, ok := p.values[id]; !ok {
		return
	}
	delete(p.values, id)
	for i, o := range p.order {
		if o == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *pendingReads) len() int { return len(p.values) }

func (p *pendingReads) reset() {
	p.values = make(map[uuid.UUID]bool)
	p.order = nil
}
