package usecase

import (
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
)

// IngestJob represents a queued .eml file waiting to be processed
type IngestJob struct {
	ID   string
	Path string
}

// IngestWorkerService processes uploaded .eml files on a fixed pool of
// background workers so uploads can return immediately.
type IngestWorkerService struct {
	ingestUsecase IngestUsecase
	jobQueue      chan IngestJob
	workerWg      sync.WaitGroup
	workerCount   int
	started       bool
	mu            sync.Mutex
}

// NewIngestWorkerService creates a new ingest worker service
func NewIngestWorkerService(ingestUsecase IngestUsecase, workerCount int) *IngestWorkerService {
	if workerCount <= 0 {
		workerCount = 2 // Default to 2 workers
	}

	return &IngestWorkerService{
		ingestUsecase: ingestUsecase,
		jobQueue:      make(chan IngestJob, 100), // Buffered channel
		workerCount:   workerCount,
	}
}

// Start starts the ingest workers
func (s *IngestWorkerService) Start() {
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
	log.Printf("[IngestWorker] Started %d workers", s.workerCount)
}

// Stop stops all workers gracefully
func (s *IngestWorkerService) Stop() {
	close(s.jobQueue)
	s.workerWg.Wait()
	log.Println("[IngestWorker] All workers stopped")
}

// worker processes ingest jobs from the queue
func (s *IngestWorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}

	log.Printf("[IngestWorker] Worker %d stopped", id)
}

// processJob ingests a single uploaded file and removes it afterwards
func (s *IngestWorkerService) processJob(job IngestJob) {
	result, err := s.ingestUsecase.ProcessEMLFile(job.Path)
	if err != nil {
		log.Printf("[IngestWorker] Job %s failed for %s: %v", job.ID, job.Path, err)
	} else {
		log.Printf("[IngestWorker] Job %s ingested %d messages into thread %s", job.ID, result.MessagesProcessed, result.ThreadID)
	}

	if err := os.Remove(job.Path); err != nil {
		log.Printf("[IngestWorker] Failed to remove upload %s: %v", job.Path, err)
	}
}

// QueueIngest adds an ingest job to the queue (non-blocking).
// Returns the job id and false when the queue is full.
func (s *IngestWorkerService) QueueIngest(path string) (string, bool) {
	job := IngestJob{ID: uuid.New().String(), Path: path}
	select {
	case s.jobQueue <- job:
		return job.ID, true
	default:
		return "", false // Queue full
	}
}
