package history

import (
	"sync"

	"src.calc.sh/pkg/store/storedefs"
)

// job is a pending write. Every job carries the full desired state of the
// store, so a newer job makes an unwritten older one obsolete.
type job struct {
	clear   bool
	entries []storedefs.Entry
}

// persister writes jobs to a store from a single goroutine. It holds at most
// one pending job; submitting a job replaces the pending one. Writes thus
// happen in submission order, and an older snapshot can never overwrite a
// newer one.
type persister struct {
	st storedefs.Store

	mu      sync.Mutex
	cond    *sync.Cond
	pending *job
	busy    bool
	closed  bool

	done chan struct{}
}

func newPersister(st storedefs.Store) *persister {
	p := &persister{st: st, done: make(chan struct{})}
	p.cond = sync.NewCond(&p.mu)
	go p.loop()
	return p
}

func (p *persister) save(entries []storedefs.Entry) { p.submit(job{entries: entries}) }

func (p *persister) clear() { p.submit(job{clear: true}) }

func (p *persister) submit(j job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.pending = &j
	p.cond.Broadcast()
}

func (p *persister) loop() {
	defer close(p.done)
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		for p.pending == nil && !p.closed {
			p.cond.Wait()
		}
		if p.pending == nil {
			return
		}
		j := p.pending
		p.pending = nil
		p.busy = true
		p.mu.Unlock()
		p.write(j)
		p.mu.Lock()
		p.busy = false
		p.cond.Broadcast()
	}
}

func (p *persister) write(j *job) {
	var err error
	if j.clear {
		err = p.st.ClearHistory()
	} else {
		err = p.st.SaveHistory(j.entries)
	}
	if err != nil {
		logger.Println("cannot persist history:", err)
	}
}

func (p *persister) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.pending != nil || p.busy {
		p.cond.Wait()
	}
}

func (p *persister) close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	<-p.done
}
