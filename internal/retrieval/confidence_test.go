package retrieval

import "testing"

func TestConfident(t *testing.T) {
	cases := []struct {
		name      string
		passages  []Passage
		threshold float64
		want      bool
	}{
		{name: "empty never confident", passages: nil, threshold: 0.6, want: false},
		{
			name:      "best under threshold",
			passages:  []Passage{{Distance: 0.8}, {Distance: 0.3}, {Distance: 0.9}},
			threshold: 0.6,
			want:      true,
		},
		{
			name:      "best equal to threshold",
			passages:  []Passage{{Distance: 0.6}},
			threshold: 0.6,
			want:      false,
		},
		{
			name:      "all above threshold",
			passages:  []Passage{{Distance: 0.7}, {Distance: 0.95}},
			threshold: 0.6,
			want:      false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Confident(tc.passages, tc.threshold); got != tc.want {
				t.Errorf("Confident(%v, %v) = %v, want %v", tc.passages, tc.threshold, got, tc.want)
			}
		})
	}
}
