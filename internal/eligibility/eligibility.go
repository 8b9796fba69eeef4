// Package eligibility decides whether a survey respondent qualifies for
// the AI-generated review flow. The same predicate gates the review
// endpoint and the routing hint returned after survey submission, so it
// lives in one place.
package eligibility

// Satisfaction levels the predicate cares about.
const (
	ResultVerySatisfied = "大変満足"
	ResultSatisfied     = "満足"
	WorstDissatisfied   = "不満"
	WorstAtmosphere     = "悪い"
)

// Input holds the four satisfaction-style answers of a survey. Empty
// strings mean the respondent skipped the question.
type Input struct {
	ResultSatisfaction     string
	CounselingSatisfaction string
	AtmosphereRating       string
	StaffServiceRating     string
}

// Eligible reports whether the respondent qualifies for review
// generation:
//   - the treatment result is rated one of the top two levels,
//   - counseling is unanswered or not the worst level (やや不満 is fine),
//   - atmosphere is unanswered or not the worst level (やや悪い is fine),
//   - staff service is unanswered or not the worst level.
func Eligible(in Input) bool {
	resultSatisfied := in.ResultSatisfaction == ResultVerySatisfied ||
		in.ResultSatisfaction == ResultSatisfied
	counselingOK := in.CounselingSatisfaction == "" || in.CounselingSatisfaction != WorstDissatisfied
	atmosphereOK := in.AtmosphereRating == "" || in.AtmosphereRating != WorstAtmosphere
	staffOK := in.StaffServiceRating == "" || in.StaffServiceRating != WorstDissatisfied

	return resultSatisfied && counselingOK && atmosphereOK && staffOK
}

// FromPointers adapts nullable survey columns to an Input.
func FromPointers(result string, counseling, atmosphere, staff *string) Input {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return Input{
		ResultSatisfaction:     result,
		CounselingSatisfaction: deref(counseling),
		AtmosphereRating:       deref(atmosphere),
		StaffServiceRating:     deref(staff),
	}
}
