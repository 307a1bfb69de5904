package workerpool

import (
	"sync"

	"github.com/kiteco/jetml/kite-golib/errors"
)

// Job is a unit of work executed by the pool
type Job func() error

// Pool runs jobs on a fixed number of goroutines. Errors returned by jobs are
// collected and reported by Wait.
type Pool struct {
	jobs chan Job
	stop chan struct{}

	stopOnce sync.Once
	pending  sync.WaitGroup

	m    sync.Mutex
	errs errors.Errors
}

// New starts a pool with the given number of workers (at least one).
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		jobs: make(chan Job),
		stop: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	for {
		select {
		case <-p.stop:
			return
		case job := <-p.jobs:
			p.run(job)
		}
	}
}

func (p *Pool) run(job Job) {
	defer p.pending.Done()

	if err := job(); err != nil {
		p.m.Lock()
		p.errs = errors.Append(p.errs, err)
		p.m.Unlock()
	}
}

// Add queues jobs without blocking. Jobs not yet started when Stop is called are dropped.
func (p *Pool) Add(jobs []Job) {
	p.pending.Add(len(jobs))

	go func() {
		for i, job := range jobs {
			select {
			case p.jobs <- job:
			case <-p.stop:
				p.pending.Add(i - len(jobs))
				return
			}
		}
	}()
}

// Wait blocks until every added job has either run or been dropped, and
// returns the combined errors of the jobs that failed.
func (p *Pool) Wait() error {
	p.pending.Wait()

	p.m.Lock()
	defer p.m.Unlock()
	if p.errs == nil {
		return nil
	}
	return p.errs
}

// Stop releases the workers; running jobs finish, queued jobs are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}
