package reminder

import (
	"context"
	"fmt"

	"github.com/SteampunkGill/readmemory/internal/logger"
)

// DispatchJob carries one user's reminder through the worker pool. Delivery
// is a log line; push channels live outside this service.
type DispatchJob struct {
	UserID        int64
	DueCount      int
	PreferredTime string
}

func (j *DispatchJob) Name() string {
	return fmt.Sprintf("reminder-dispatch-%d", j.UserID)
}

func (j *DispatchJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("review reminder: user_id=%d, due_words=%d, preferred_time=%s", j.UserID, j.DueCount, j.PreferredTime)
	return nil
}
