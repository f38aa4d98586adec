package service

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func day(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func fixedDay(d domain.Date) func() domain.Date {
	return func() domain.Date { return d }
}

// expectInvalidate registers an InvalidateAll expectation on a fresh cache mock.
func expectInvalidate() *mockCache {
	c := &mockCache{}
	c.On("InvalidateAll", mock.Anything).Return(nil)
	return c
}
