// FILE: internal/service/plan_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanUseLimit(t *testing.T) {
	s := &planService{}

	tests := []struct {
		name  string
		used  int
		limit int
		want  bool
	}{
		{name: "under limit", used: 2, limit: 3, want: true},
		{name: "at limit", used: 3, limit: 3, want: false},
		{name: "over limit", used: 5, limit: 3, want: false},
		{name: "zero limit disables the feature", used: 0, limit: 0, want: false},
		{name: "negative limit is unlimited", used: 1000, limit: -1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.canUseLimit(tt.used, tt.limit))
		})
	}
}
