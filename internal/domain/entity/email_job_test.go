package entity

import (
	"testing"
	"time"
)

func TestEmailJob_MarkFailed(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("retries back off then give up", func(t *testing.T) {
		job := NewEmailJob(TemplatePasswordReset, "a@example.com", "A", "Reset", nil)

		job.MarkFailed(errTest("temporary"), false, at)
		if job.Status != EmailStatusPending || job.Attempts != 1 || !job.ScheduledAt.Equal(at) {
			t.Fatalf("expected immediate retry, got %s/%d at %v", job.Status, job.Attempts, job.ScheduledAt)
		}

		job.MarkFailed(errTest("temporary"), false, at)
		if !job.ScheduledAt.Equal(at.Add(time.Minute)) {
			t.Errorf("expected retry after one minute, got %v", job.ScheduledAt)
		}
		if job.Due(at) || !job.Due(at.Add(time.Minute)) {
			t.Error("expected job to become due after the delay")
		}

		job.MarkFailed(errTest("temporary"), false, at)
		if job.Status != EmailStatusFailed || job.ProcessedAt == nil {
			t.Errorf("expected job to fail after %d attempts, got %s", job.MaxAttempts, job.Status)
		}
	})

	t.Run("permanent failure finalizes", func(t *testing.T) {
		job := NewEmailJob(TemplatePasswordReset, "a@example.com", "A", "Reset", nil)

		job.MarkFailed(errTest("permanent"), true, at)
		if job.Status != EmailStatusFailed || job.LastError != "permanent" {
			t.Errorf("expected permanent failure to finalize job, got %s", job.Status)
		}
	})

	t.Run("sent clears the last error", func(t *testing.T) {
		job := NewEmailJob(TemplateWelcome, "a@example.com", "A", "Hi", nil)
		job.MarkFailed(errTest("temporary"), false, at)
		job.MarkSent("msg-1", at)

		if job.Status != EmailStatusSent || job.ProviderID != "msg-1" || job.LastError != "" {
			t.Errorf("unexpected job after send: %+v", job)
		}
		if job.Due(at) {
			t.Error("expected sent job not to be due")
		}
	})
}

type errTest string

func (e errTest) Error() string { return string(e) }
