package workers

// Workers runs a fixed set of background workers in registration order.
type Workers struct {
	workers []Worker
}

// NewWorkers collects the given workers into a single runnable aggregate.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
