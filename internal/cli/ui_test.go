package cli

import "testing"

func TestGraphStatsLine(t *testing.T) {
	tests := []struct {
		events, deps int
		cached       bool
		want         string
	}{
		{3, 2, false, "3 events · 2 dependencies · fresh"},
		{3, 2, true, "3 events · 2 dependencies · cached"},
		{0, 0, false, "0 events · 0 dependencies · fresh"},
	}
	for _, tt := range tests {
		if got := graphStatsLine(tt.events, tt.deps, tt.cached); got != tt.want {
			t.Errorf("graphStatsLine(%d, %d, %v) = %q, want %q",
				tt.events, tt.deps, tt.cached, got, tt.want)
		}
	}
}
