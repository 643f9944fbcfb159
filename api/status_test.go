package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/hillclimb/climb"
	"github.com/katalvlaran/hillclimb/heightmap"
)

func TestStatusFor(t *testing.T) {
	fault := &climb.ConsistencyFault{
		At:       heightmap.Position{X: 0, Y: 2},
		From:     heightmap.Position{X: 0, Y: 1},
		Recorded: 4,
		Offered:  2,
	}
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"Deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"WrappedDeadline", fmt.Errorf("climb: candidate (0,0): %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"Canceled", context.Canceled, http.StatusServiceUnavailable},
		{"OutOfBounds", fmt.Errorf("climb: goal: %w", heightmap.ErrOutOfBounds), http.StatusBadRequest},
		{"ConsistencyFault", fault, http.StatusInternalServerError},
		{"WrappedFault", fmt.Errorf("climb: candidate (0,0): %w", fault), http.StatusInternalServerError},
		{"Other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestMaxBodyBytes(t *testing.T) {
	// a full grid of n cells in one row plus the JSON envelope fits
	assert.Greater(t, maxBodyBytes(100), int64(100+len(`{"heightmap":"","mode":"single","path":true}`)))
	// one cell per row doubles the payload with escaped line breaks
	assert.GreaterOrEqual(t, maxBodyBytes(100), int64(3*100))
}
