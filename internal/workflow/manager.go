package workflow

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"murmur/internal/config"
	"murmur/internal/logging"
	"murmur/internal/prompt"
	"murmur/internal/queue"
	"murmur/internal/watch"
)

// Manager coordinates the event intake and dispatch loops. Exactly one intake
// goroutine writes to the queue and exactly one dispatch goroutine reads from
// it; workers are spawned per accepted file and tracked separately so a
// shutdown can let them finish.
type Manager struct {
	cfg       *config.Config
	queue     *queue.Queue
	events    <-chan watch.PathEvent
	prompter  prompt.Prompter
	processor *Processor
	logger    *slog.Logger
	idlePoll  time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	loops   sync.WaitGroup
	workers sync.WaitGroup
}

// NewManager constructs a manager over an already-started event stream.
func NewManager(
	cfg *config.Config,
	q *queue.Queue,
	events <-chan watch.PathEvent,
	prompter prompt.Prompter,
	processor *Processor,
	logger *slog.Logger,
) *Manager {
	idlePoll := time.Duration(cfg.Ingest.IdlePollMS) * time.Millisecond
	if idlePoll <= 0 {
		idlePoll = 100 * time.Millisecond
	}
	return &Manager{
		cfg:       cfg,
		queue:     q,
		events:    events,
		prompter:  prompter,
		processor: processor,
		logger:    logging.NewComponentLogger(logger, "workflow"),
		idlePoll:  idlePoll,
	}
}

// Start begins background processing.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("workflow already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true

	m.loops.Add(2)
	go m.runIntake(runCtx)
	go m.runDispatch(runCtx)
	return nil
}

// Stop terminates the intake and dispatch loops, then waits for in-flight
// workers to run to completion. Jobs already accepted are never abandoned by
// a shutdown.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.loops.Wait()
	m.workers.Wait()
}

// runIntake is the only writer to the queue.
func (m *Manager) runIntake(ctx context.Context) {
	defer m.loops.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-m.events:
			if !ok {
				return
			}
			if m.queue.Offer(event.Path) {
				m.logger.Info("candidate queued",
					logging.String(logging.FieldPath, event.Path),
					logging.String("kind", string(event.Kind)),
				)
			}
		}
	}
}

// runDispatch is the only reader of the queue and the only caller of the
// confirmation prompt, so the operator is never asked two questions at once.
func (m *Manager) runDispatch(ctx context.Context) {
	defer m.loops.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		path, ok := m.queue.TakeOrEmpty()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.idlePoll):
			}
			continue
		}

		decision, err := m.prompter.Confirm(ctx, m.candidate(path))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.Warn("confirmation failed, discarding candidate",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			continue
		}
		if decision != prompt.Accept {
			m.logger.Info("candidate discarded by operator",
				logging.String(logging.FieldPath, path),
			)
			continue
		}

		m.spawnWorker(ctx, path)
	}
}

func (m *Manager) spawnWorker(ctx context.Context, path string) {
	job := NewJob(path)
	m.logger.Info("worker started",
		logging.String(logging.FieldPath, path),
		logging.String(logging.FieldJobID, job.ID.String()),
	)

	// Workers outlive a shutdown request: the job context detaches from the
	// run context so canceling the loops does not abort in-flight uploads.
	jobCtx := context.WithoutCancel(ctx)
	m.workers.Add(1)
	go func() {
		defer m.workers.Done()
		if err := m.processor.Process(jobCtx, &job); err != nil {
			m.logger.Warn("job abandoned",
				logging.String(logging.FieldPath, path),
				logging.String(logging.FieldJobID, job.ID.String()),
				logging.Error(err),
			)
		}
	}()
}

func (m *Manager) candidate(path string) prompt.Candidate {
	candidate := prompt.Candidate{Path: path}
	if info, err := os.Stat(path); err == nil {
		candidate.Size = info.Size()
		candidate.Modified = info.ModTime()
	}
	return candidate
}
