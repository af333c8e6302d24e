package processor

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lavka/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("shop-service-test", "error", io.Discard)
	os.Exit(m.Run())
}

// MockCleanupRunner мок для CleanupRunner
type MockCleanupRunner struct {
	mock.Mock
}

func (m *MockCleanupRunner) PurgeDeleted(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewCronScheduler(t *testing.T) {
	mockCleanup := new(MockCleanupRunner)

	scheduler := NewCronScheduler(mockCleanup)

	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, mockCleanup, scheduler.cleanup)
}

func TestCronScheduler_Start_Success(t *testing.T) {
	mockCleanup := new(MockCleanupRunner)
	scheduler := NewCronScheduler(mockCleanup)

	err := scheduler.Start(context.Background(), "0 * * * *")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	mockCleanup := new(MockCleanupRunner)
	scheduler := NewCronScheduler(mockCleanup)

	err := scheduler.Start(context.Background(), "invalid cron expression")

	assert.Error(t, err)
}

func TestCronScheduler_JobExecution(t *testing.T) {
	mockCleanup := new(MockCleanupRunner)
	scheduler := NewCronScheduler(mockCleanup)

	mockCleanup.On("PurgeDeleted", mock.Anything).Return(nil)

	err := scheduler.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	time.Sleep(350 * time.Millisecond)

	scheduler.Stop()

	assert.GreaterOrEqual(t, len(mockCleanup.Calls), 2)
}

func TestCronScheduler_JobExecution_WithError(t *testing.T) {
	// Планировщик продолжает запускать очистку несмотря на ошибки
	mockCleanup := new(MockCleanupRunner)
	scheduler := NewCronScheduler(mockCleanup)

	mockCleanup.On("PurgeDeleted", mock.Anything).Return(errors.New("db error"))

	err := scheduler.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	time.Sleep(350 * time.Millisecond)

	scheduler.Stop()

	assert.GreaterOrEqual(t, len(mockCleanup.Calls), 2)
}

func TestCronScheduler_GetEntries_Empty(t *testing.T) {
	scheduler := NewCronScheduler(new(MockCleanupRunner))

	assert.Empty(t, scheduler.GetEntries())
}
