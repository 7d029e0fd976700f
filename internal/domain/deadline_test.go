package domain_test

import (
	"testing"
	"time"

	"github.com/locvowork/todolist/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeDeadline(t *testing.T) {
	start := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		priority domain.Priority
		want     time.Time
	}{
		{domain.PriorityUrgent, time.Date(2024, time.March, 11, 15, 30, 0, 0, time.UTC)},
		{domain.PriorityHigh, time.Date(2024, time.March, 12, 15, 30, 0, 0, time.UTC)},
		{domain.PriorityMedium, time.Date(2024, time.March, 17, 15, 30, 0, 0, time.UTC)},
		{domain.PriorityLow, time.Date(2024, time.April, 9, 15, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ComputeDeadline(start, tt.priority))
		})
	}
}

func TestComputeDeadlineRollover(t *testing.T) {
	t.Run("end of month", func(t *testing.T) {
		start := time.Date(2023, time.January, 31, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2023, time.February, 1, 9, 0, 0, 0, time.UTC), domain.ComputeDeadline(start, domain.PriorityUrgent))
		assert.Equal(t, time.Date(2023, time.March, 2, 9, 0, 0, 0, time.UTC), domain.ComputeDeadline(start, domain.PriorityLow))
	})

	t.Run("leap february", func(t *testing.T) {
		start := time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), domain.ComputeDeadline(start, domain.PriorityHigh))
	})

	t.Run("end of year", func(t *testing.T) {
		start := time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC), domain.ComputeDeadline(start, domain.PriorityUrgent))
		assert.Equal(t, time.Date(2024, time.January, 7, 23, 59, 0, 0, time.UTC), domain.ComputeDeadline(start, domain.PriorityMedium))
	})
}

func TestComputeDeadlineUnknownPriority(t *testing.T) {
	start := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	for _, p := range []domain.Priority{"", "urgent", "Critical", "LOW"} {
		assert.Equal(t, start, domain.ComputeDeadline(start, p), "priority %q", p)
		assert.False(t, p.Valid())
	}
}

func TestPriorityOffsets(t *testing.T) {
	want := []int{1, 2, 7, 30}
	for i, p := range domain.Priorities {
		assert.True(t, p.Valid())
		assert.Equal(t, want[i], p.OffsetDays())
	}
}
