// internal/api/job/store.go
package job

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/journal/internal/core"
)

// Status represents job status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Job represents an async job.
type Job struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Status    Status      `json:"status"`
	Result    any         `json:"result,omitempty"`
	Error     *Failure    `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Failure describes why a job failed
type Failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// Done reports whether the job has finished
func (j Job) Done() bool {
	return j.Status == StatusComplete || j.Status == StatusFailed
}

// Store keeps recent jobs in memory. The oldest job is evicted at capacity and
// finished jobs expire after ttl.
type Store struct {
	jobs    map[string]*Job
	order   []string // insertion order for eviction
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// NewStore creates a new job store.
func NewStore(maxSize int, ttl time.Duration) *Store {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Store{
		jobs:    make(map[string]*Job),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create creates a new pending job and returns a copy of it.
func (s *Store) Create(jobType string) Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expire()

	now := s.now()
	job := &Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if len(s.order) >= s.maxSize {
		delete(s.jobs, s.order[0])
		s.order = s.order[1:]
	}

	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
	return *job
}

// Get retrieves a job by ID.
func (s *Store) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok || s.expired(job) {
		return nil, core.Errorf(core.ErrJobNotFound, "job %s", id)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// Update modifies a job using an update function.
func (s *Store) Update(id string, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return core.Errorf(core.ErrJobNotFound, "job %s", id)
	}

	fn(job)
	job.UpdatedAt = s.now()
	return nil
}

// List returns live jobs, oldest first.
func (s *Store) List() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Job, 0, len(s.order))
	for _, id := range s.order {
		if job := s.jobs[id]; !s.expired(job) {
			result = append(result, *job)
		}
	}
	return result
}

// Run creates a job of jobType and executes fn in the background, recording
// its result or error.
func (s *Store) Run(ctx context.Context, jobType string, fn func(context.Context) (any, error)) Job {
	job := s.Create(jobType)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Update(job.ID, func(j *Job) { j.Status = StatusRunning })

		result, err := fn(ctx)
		s.Update(job.ID, func(j *Job) {
			if err != nil {
				j.Status = StatusFailed
				j.Error = failure(err)
				return
			}
			j.Status = StatusComplete
			j.Result = result
		})
	}()

	return job
}

// Wait blocks until every job started with Run has finished
func (s *Store) Wait() {
	s.wg.Wait()
}

// expire drops finished jobs past their ttl; callers hold the write lock
func (s *Store) expire() {
	kept := s.order[:0]
	for _, id := range s.order {
		if s.expired(s.jobs[id]) {
			delete(s.jobs, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

func (s *Store) expired(j *Job) bool {
	return s.ttl > 0 && j.Done() && s.now().Sub(j.UpdatedAt) > s.ttl
}

func failure(err error) *Failure {
	var ce *core.Error
	if !errors.As(err, &ce) {
		ce = core.WrapError(core.ErrStorageFailed, err)
	}
	f := &Failure{Code: ce.Code, Message: ce.Message}
	if ce.Cause != nil {
		f.Cause = ce.Cause.Error()
	}
	return f
}
