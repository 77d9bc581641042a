// Package workerpool provides the job-submission interface the server fans
// per-connection work out through. A Pool is deliberately thin: submit a
// job, it runs somewhere. Which pool to use, and how many workers it has,
// is a deployment decision, not something the server needs to know about.
package workerpool

// Job is a unit of work submitted to a Pool. It carries no result; a Job
// that needs to report back does so through channels or callbacks it
// closes over.
type Job func()

// Pool runs submitted jobs according to its own scheduling policy.
type Pool interface {
	// Submit hands job to the pool. It may run synchronously, on a new
	// goroutine, or queued for a worker, depending on the implementation;
	// callers must not assume ordering or completion by the time Submit
	// returns. It returns ErrPoolClosed if the pool has already been
	// closed, in which case job was not run and never will be.
	Submit(job Job) error

	// Close stops accepting new jobs and releases the pool's workers.
	// Jobs already queued may or may not finish depending on the
	// implementation.
	Close() error
}
