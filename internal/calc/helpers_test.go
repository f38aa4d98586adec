package calc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/domain"
)

func day(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func dateStrings(dates []domain.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
