package services

import (
	"sync"

	"mealshop/utils"
)

// Dispatcher is the process-wide worker pool for background tasks. It is
// created once at startup with a fixed number of workers and a bounded
// queue, and stopped on shutdown. Submit blocks when the queue is full.
type Dispatcher struct {
	tasks    chan func()
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{
		tasks: make(chan func(), queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		task()
	}
}

// Submit enqueues a task for background execution. Submitting after Stop
// panics on the closed channel, so Stop must be the last call.
func (d *Dispatcher) Submit(task func()) {
	d.tasks <- task
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
	utils.InfoLogger.Println("Dispatcher stopped")
}
