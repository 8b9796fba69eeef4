package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want bool
	}{
		{
			name: "very satisfied with no optional answers",
			in:   Input{ResultSatisfaction: "大変満足"},
			want: true,
		},
		{
			name: "satisfied with all optional answers positive",
			in: Input{
				ResultSatisfaction:     "満足",
				CounselingSatisfaction: "とても満足",
				AtmosphereRating:       "とても良い",
				StaffServiceRating:     "丁寧だった",
			},
			want: true,
		},
		{
			name: "neutral result is not eligible",
			in:   Input{ResultSatisfaction: "普通"},
			want: false,
		},
		{
			name: "dissatisfied result is not eligible",
			in:   Input{ResultSatisfaction: "不満"},
			want: false,
		},
		{
			name: "counseling dissatisfaction blocks",
			in: Input{
				ResultSatisfaction:     "大変満足",
				CounselingSatisfaction: "不満",
			},
			want: false,
		},
		{
			name: "bad atmosphere blocks",
			in: Input{
				ResultSatisfaction: "大変満足",
				AtmosphereRating:   "悪い",
			},
			want: false,
		},
		{
			name: "staff dissatisfaction blocks",
			in: Input{
				ResultSatisfaction: "満足",
				StaffServiceRating: "不満",
			},
			want: false,
		},
		{
			name: "slightly bad atmosphere does not block",
			in: Input{
				ResultSatisfaction: "満足",
				AtmosphereRating:   "やや悪い",
			},
			want: true,
		},
		{
			name: "slightly dissatisfied counseling does not block",
			in: Input{
				ResultSatisfaction:     "大変満足",
				CounselingSatisfaction: "やや不満",
			},
			want: true,
		},
		{
			name: "empty result is not eligible",
			in:   Input{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(tt.in))
		})
	}
}

func TestFromPointers(t *testing.T) {
	in := FromPointers("大変満足", nil, strPtr("良い"), nil)
	assert.Equal(t, "大変満足", in.ResultSatisfaction)
	assert.Empty(t, in.CounselingSatisfaction)
	assert.Equal(t, "良い", in.AtmosphereRating)
	assert.Empty(t, in.StaffServiceRating)
	assert.True(t, Eligible(in))
}

// Answering every optional question positively must never make a
// survey less eligible than leaving them blank.
func TestEligibleOptionalAnswersMonotonic(t *testing.T) {
	base := Input{ResultSatisfaction: "満足"}
	assert.True(t, Eligible(base))

	withAnswers := base
	withAnswers.CounselingSatisfaction = "普通"
	withAnswers.AtmosphereRating = "普通"
	withAnswers.StaffServiceRating = "普通"
	assert.True(t, Eligible(withAnswers))
}
