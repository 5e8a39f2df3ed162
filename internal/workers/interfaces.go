// Package workers holds the application's background workers and the
// aggregate that runs them. The only worker today is the boot rescheduler,
// which re-arms notification timers after a process restart.
package workers

// Worker is a runnable background job. Run either blocks for the duration
// of the work or spawns goroutines internally.
type Worker interface {
	Run()
}
