package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"email-audit-backend/pkg/metrics"
)

// AuditJob represents a queued audit run for one thread
type AuditJob struct {
	ThreadID string
}

// AuditWorkerService executes audit runs on a fixed pool of background
// workers. One job = one thread's full audit; iteration inside a run is
// sequential, concurrency exists only across runs.
type AuditWorkerService struct {
	auditUsecase AuditUsecase
	jobQueue     chan AuditJob
	workerWg     sync.WaitGroup
	workerCount  int
	started      bool
	mu           sync.Mutex
}

// NewAuditWorkerService creates a new audit worker service
func NewAuditWorkerService(auditUsecase AuditUsecase, workerCount int) *AuditWorkerService {
	if workerCount <= 0 {
		workerCount = 3 // Default to 3 workers
	}

	return &AuditWorkerService{
		auditUsecase: auditUsecase,
		jobQueue:     make(chan AuditJob, 100), // Buffered channel
		workerCount:  workerCount,
	}
}

// Start starts the audit workers
func (s *AuditWorkerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.started = true
	log.Printf("[AuditWorker] Started %d workers", s.workerCount)
}

// Stop stops all workers gracefully
func (s *AuditWorkerService) Stop() {
	close(s.jobQueue)
	s.workerWg.Wait()
	log.Println("[AuditWorker] All workers stopped")
}

// worker processes audit jobs from the queue
func (s *AuditWorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}

	log.Printf("[AuditWorker] Worker %d stopped", id)
}

// processJob runs a single audit job
func (s *AuditWorkerService) processJob(job AuditJob) {
	start := time.Now()

	report, err := s.auditUsecase.RunAudit(context.Background(), job.ThreadID)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		metrics.AuditRunsTotal.WithLabelValues("error").Inc()
		metrics.AuditRunDurationSeconds.WithLabelValues("error").Observe(elapsed)
		log.Printf("[AuditWorker] Audit failed for thread %s: %v", job.ThreadID, err)
		return
	}

	metrics.AuditRunsTotal.WithLabelValues("ok").Inc()
	metrics.AuditRunDurationSeconds.WithLabelValues("ok").Observe(elapsed)
	log.Printf("[AuditWorker] Completed report %s for thread %s (score %.2f)", report.ID, job.ThreadID, report.OverallScore)
}

// QueueAudit adds an audit job to the queue (non-blocking).
// Returns false when the queue is full.
func (s *AuditWorkerService) QueueAudit(threadID string) bool {
	select {
	case s.jobQueue <- AuditJob{ThreadID: threadID}:
		return true
	default:
		return false // Queue full
	}
}
