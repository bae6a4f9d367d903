package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/testutil/mocks"
	"github.com/SteampunkGill/readmemory/internal/worker"
)

type fakeDispatcher struct {
	jobs []worker.Job
	err  error
}

func (d *fakeDispatcher) Submit(job worker.Job) error {
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestScanQueuesRemindersForDueUsers(t *testing.T) {
	settings := new(mocks.MockSettingsRepository)
	vocab := new(mocks.MockVocabularyRepository)
	dispatcher := &fakeDispatcher{}

	now := time.Date(2025, 6, 15, 18, 2, 30, 0, time.UTC)

	settings.On("RemindersDue", mock.Anything, "18:00").
		Return([]models.ReviewSettings{
			{UserID: 1, PreferredTime: "18:00", ReminderEnabled: true},
			{UserID: 2, PreferredTime: "18:00", ReminderEnabled: true},
		}, nil)
	settings.On("RemindersDue", mock.Anything, mock.Anything).
		Return([]models.ReviewSettings{}, nil)

	vocab.On("CountEligible", mock.Anything, models.DueWordFilter{UserID: 1}, mock.Anything).
		Return(10, 4, nil)
	vocab.On("CountEligible", mock.Anything, models.DueWordFilter{UserID: 2}, mock.Anything).
		Return(3, 0, nil)

	s := NewScheduler(settings, vocab, dispatcher, 5, fixedClock(now))
	s.scan()

	assert.Len(t, dispatcher.jobs, 1)
	job, ok := dispatcher.jobs[0].(*DispatchJob)
	assert.True(t, ok)
	assert.Equal(t, int64(1), job.UserID)
	assert.Equal(t, 4, job.DueCount)
	assert.Equal(t, "18:00", job.PreferredTime)
}

func TestScanCoversEveryMinuteInWindow(t *testing.T) {
	settings := new(mocks.MockSettingsRepository)
	vocab := new(mocks.MockVocabularyRepository)
	dispatcher := &fakeDispatcher{}

	now := time.Date(2025, 6, 15, 9, 1, 0, 0, time.UTC)

	settings.On("RemindersDue", mock.Anything, mock.Anything).
		Return([]models.ReviewSettings{}, nil)

	s := NewScheduler(settings, vocab, dispatcher, 3, fixedClock(now))
	s.scan()

	settings.AssertCalled(t, "RemindersDue", mock.Anything, "09:01")
	settings.AssertCalled(t, "RemindersDue", mock.Anything, "09:00")
	settings.AssertCalled(t, "RemindersDue", mock.Anything, "08:59")
	settings.AssertNumberOfCalls(t, "RemindersDue", 3)
	assert.Empty(t, dispatcher.jobs)
}

func TestScanSurvivesFullQueue(t *testing.T) {
	settings := new(mocks.MockSettingsRepository)
	vocab := new(mocks.MockVocabularyRepository)
	dispatcher := &fakeDispatcher{err: errors.New("queue full")}

	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	settings.On("RemindersDue", mock.Anything, "18:00").
		Return([]models.ReviewSettings{{UserID: 7, PreferredTime: "18:00", ReminderEnabled: true}}, nil)
	settings.On("RemindersDue", mock.Anything, mock.Anything).
		Return([]models.ReviewSettings{}, nil)
	vocab.On("CountEligible", mock.Anything, models.DueWordFilter{UserID: 7}, mock.Anything).
		Return(5, 5, nil)

	s := NewScheduler(settings, vocab, dispatcher, 1, fixedClock(now))
	s.scan()

	assert.Empty(t, dispatcher.jobs)
	vocab.AssertExpectations(t)
}
