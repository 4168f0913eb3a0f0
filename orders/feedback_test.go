package orders

import "testing"

func TestNextRating(t *testing.T) {
	tests := []struct {
		current float64
		reviews int
		rating  int
		want    float64
	}{
		{3, 1, 4, 3.5},
		{0, 0, 5, 5},
		{4.5, 2, 3, 4},
		{5, 3, 1, 4},
	}

	for _, tt := range tests {
		if got := NextRating(tt.current, tt.reviews, tt.rating); got != tt.want {
			t.Errorf("NextRating(%v, %d, %d) = %v, want %v", tt.current, tt.reviews, tt.rating, got, tt.want)
		}
	}
}
