package repository

import (
	"log"
	"time"
)

func NewWorkQueue(store *JobStore, workers int, processor JobProcessor) *WorkQueue {
	return &WorkQueue{
		workers:   workers,
		store:     store,
		processor: processor,
		shutdown:  make(chan struct{}),
	}
}

func (q *WorkQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	log.Printf("Started %d job workers", q.workers)
}

func (q *WorkQueue) Shutdown() {
	close(q.shutdown)
	q.wg.Wait()
	log.Println("All job workers stopped")
}

// worker drains any backlog first, then sleeps on notifications with a
// periodic poll as a safety net in case a NOTIFY is missed.
func (q *WorkQueue) worker(id int) {
	defer q.wg.Done()

	backoff := 100 * time.Millisecond
	const maxBackoff = 5 * time.Second

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		job, err := q.store.Claim()
		if err != nil {
			log.Printf("Worker %d: error claiming job: %v", id, err)
			select {
			case <-q.shutdown:
				return
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = 100 * time.Millisecond

		if job != nil {
			q.process(id, job)
			continue
		}

		select {
		case <-q.shutdown:
			return
		case <-q.store.NotificationChannel():
		case <-ticker.C:
		}
	}
}

func (q *WorkQueue) process(id int, job *Job) {
	log.Printf("Worker %d: processing job %s", id, job.ID)

	result, err := q.processor(job)
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		log.Printf("Worker %d: job %s failed: %v", id, job.ID, err)
	} else {
		job.Status = StatusCompleted
		job.Result = result
		job.Error = ""
	}

	if err := q.store.Update(job); err != nil {
		log.Printf("Worker %d: error updating job %s: %v", id, job.ID, err)
	}
}
