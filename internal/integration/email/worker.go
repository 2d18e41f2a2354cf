package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

const purgeInterval = time.Hour

// WorkerConfig controls how the outbox is drained. Zero values select the defaults.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Concurrency bounds how many emails of one batch are in flight at once.
	Concurrency int
	// Retention is how long sent jobs are kept before being purged. Zero keeps them forever.
	Retention time.Duration
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	return c
}

// Worker polls the outbox, renders due jobs and hands them to the EmailSender.
type Worker struct {
	outbox   adapter.EmailJobRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   WorkerConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewWorker creates a new Worker instance.
func NewWorker(outbox adapter.EmailJobRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		outbox:   outbox,
		sender:   sender,
		renderer: renderer,
		config:   config.withDefaults(),
		logger:   slog.With("component", "email_worker"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run drains the outbox every poll interval until ctx is cancelled. It always returns nil.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Email worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize,
	)

	poll := time.NewTicker(w.config.PollInterval)
	defer poll.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	w.Drain(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Email worker stopped")
			return nil
		case <-poll.C:
			w.Drain(ctx)
		case <-purge.C:
			w.purge(ctx)
		}
	}
}

// Drain processes one batch of due jobs and waits for them to finish.
func (w *Worker) Drain(ctx context.Context) {
	jobs, err := w.outbox.GetPendingJobs(ctx, w.now(), w.config.BatchSize)
	if err != nil {
		w.logger.Error("Failed to load pending email jobs", "error", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	w.logger.Debug("Processing email batch", "count", len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(w.config.Concurrency)
	for _, job := range jobs {
		g.Go(func() error {
			w.deliver(gCtx, job)
			return nil
		})
	}
	_ = g.Wait()
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := w.logger.With("job_id", job.ID, "template", job.Template, "recipient", job.Recipient)

	job.MarkProcessing()
	if err := w.outbox.Update(ctx, job); err != nil {
		logger.Error("Failed to claim email job", "error", err)
		return
	}

	body, err := w.renderer.Render(string(job.Template), job.Data)
	if err != nil {
		// A template that cannot render now will not render on retry either.
		w.fail(ctx, logger, job, domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render email", err), true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.Recipient,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		w.fail(ctx, logger, job, err, permanent)
		return
	}

	job.MarkSent(result.ProviderID, w.now())
	if err := w.outbox.Update(ctx, job); err != nil {
		logger.Error("Failed to record sent email", "error", err)
		return
	}
	logger.Info("Email sent", "provider_id", result.ProviderID)
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, cause error, permanent bool) {
	job.MarkFailed(cause, permanent, w.now())
	if err := w.outbox.Update(ctx, job); err != nil {
		logger.Error("Failed to record email failure", "error", err)
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email job gave up", "attempts", job.Attempts, "error", cause)
		return
	}
	logger.Info("Email job will be retried", "attempts", job.Attempts, "scheduled_at", job.ScheduledAt, "error", cause)
}

func (w *Worker) purge(ctx context.Context) {
	if w.config.Retention <= 0 {
		return
	}
	removed, err := w.outbox.PurgeSent(ctx, w.now().Add(-w.config.Retention))
	if err != nil {
		w.logger.Error("Failed to purge sent email jobs", "error", err)
		return
	}
	if removed > 0 {
		w.logger.Info("Purged sent email jobs", "count", removed)
	}
}
