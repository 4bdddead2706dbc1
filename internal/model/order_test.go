package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus(t *testing.T) {
	tests := []struct {
		status    OrderStatus
		valid     bool
		active    bool
		label     string
		completed int
	}{
		{status: StatusPending, valid: true, active: true, label: "Pendiente", completed: 1},
		{status: StatusPreparing, valid: true, active: true, label: "Preparando", completed: 2},
		{status: StatusReady, valid: true, label: "Listo", completed: 3},
		{status: StatusCompleted, valid: true, label: "Completado", completed: 4},
		{status: StatusCancelled, valid: true, label: "Cancelado"},
		{status: "lost", label: "lost"},
		{status: "", label: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.active, tt.status.Active())
			assert.Equal(t, tt.label, tt.status.Label())

			steps := tt.status.Progress()
			assert.Len(t, steps, 4)

			completed, current := 0, 0
			for _, step := range steps {
				if step.Completed {
					completed++
				}
				if step.Current {
					current++
					assert.Equal(t, tt.status, step.Status)
				}
			}
			assert.Equal(t, tt.completed, completed)
			if tt.completed > 0 {
				assert.Equal(t, 1, current)
			} else {
				assert.Zero(t, current)
			}
		})
	}
}
