package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	s := New(time.UTC)
	_, err := s.Every(0, func() {})
	require.Error(t, err)
	_, err = s.Every(-time.Second, func() {})
	require.Error(t, err)
}

func TestEveryRunsJob(t *testing.T) {
	s := New(time.UTC)
	ran := make(chan struct{}, 1)
	_, err := s.Every(time.Second, func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		assert.Fail(t, "job did not run")
	}
}
