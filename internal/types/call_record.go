package types

// Dimension identifies one rubric dimension of a scored call
type Dimension string

const (
	DimOverall              Dimension = "overall"
	DimEngagement           Dimension = "engagement"
	DimObjectionHandling    Dimension = "objection"
	DimInformationGathering Dimension = "information"
	DimProgramExplanation   Dimension = "program"
	DimClosing              Dimension = "closing"
	DimEffectiveness        Dimension = "effectiveness"
)

// AllDimensions lists every rubric dimension in display order
var AllDimensions = []Dimension{
	DimOverall,
	DimEngagement,
	DimObjectionHandling,
	DimInformationGathering,
	DimProgramExplanation,
	DimClosing,
	DimEffectiveness,
}

// RubricScores holds the per-dimension scores of a single call.
// A nil entry means the dimension was not scored; it must never be
// treated as zero.
type RubricScores struct {
	Overall              *float64 `json:"overall,omitempty" dynamodbav:"Overall,omitempty"`
	Engagement           *float64 `json:"engagement,omitempty" dynamodbav:"Engagement,omitempty"`
	ObjectionHandling    *float64 `json:"objectionHandling,omitempty" dynamodbav:"ObjectionHandling,omitempty"`
	InformationGathering *float64 `json:"informationGathering,omitempty" dynamodbav:"InformationGathering,omitempty"`
	ProgramExplanation   *float64 `json:"programExplanation,omitempty" dynamodbav:"ProgramExplanation,omitempty"`
	Closing              *float64 `json:"closing,omitempty" dynamodbav:"Closing,omitempty"`
	Effectiveness        *float64 `json:"effectiveness,omitempty" dynamodbav:"Effectiveness,omitempty"`
}

// Get returns the score for one dimension, nil if absent
func (s RubricScores) Get(d Dimension) *float64 {
	switch d {
	case DimOverall:
		return s.Overall
	case DimEngagement:
		return s.Engagement
	case DimObjectionHandling:
		return s.ObjectionHandling
	case DimInformationGathering:
		return s.InformationGathering
	case DimProgramExplanation:
		return s.ProgramExplanation
	case DimClosing:
		return s.Closing
	case DimEffectiveness:
		return s.Effectiveness
	}
	return nil
}

// Set replaces the score for one dimension; nil marks it missing
func (s *RubricScores) Set(d Dimension, v *float64) {
	switch d {
	case DimOverall:
		s.Overall = v
	case DimEngagement:
		s.Engagement = v
	case DimObjectionHandling:
		s.ObjectionHandling = v
	case DimInformationGathering:
		s.InformationGathering = v
	case DimProgramExplanation:
		s.ProgramExplanation = v
	case DimClosing:
		s.Closing = v
	case DimEffectiveness:
		s.Effectiveness = v
	}
}

// RubricTexts holds per-dimension free text (score rationales on a call,
// or per-user rating summaries)
type RubricTexts struct {
	Overall              string `json:"overall,omitempty" dynamodbav:"Overall,omitempty"`
	Engagement           string `json:"engagement,omitempty" dynamodbav:"Engagement,omitempty"`
	ObjectionHandling    string `json:"objectionHandling,omitempty" dynamodbav:"ObjectionHandling,omitempty"`
	InformationGathering string `json:"informationGathering,omitempty" dynamodbav:"InformationGathering,omitempty"`
	ProgramExplanation   string `json:"programExplanation,omitempty" dynamodbav:"ProgramExplanation,omitempty"`
	Closing              string `json:"closing,omitempty" dynamodbav:"Closing,omitempty"`
	Effectiveness        string `json:"effectiveness,omitempty" dynamodbav:"Effectiveness,omitempty"`
}

// Get returns the text for one dimension, empty string if absent
func (t RubricTexts) Get(d Dimension) string {
	switch d {
	case DimOverall:
		return t.Overall
	case DimEngagement:
		return t.Engagement
	case DimObjectionHandling:
		return t.ObjectionHandling
	case DimInformationGathering:
		return t.InformationGathering
	case DimProgramExplanation:
		return t.ProgramExplanation
	case DimClosing:
		return t.Closing
	case DimEffectiveness:
		return t.Effectiveness
	}
	return ""
}

// CallRecord represents one completed training call for DynamoDB persistence.
// Records are append-only facts; they are never updated in place.
type CallRecord struct {
	TeamID              string       `json:"teamId" dynamodbav:"TeamID"` // partition key
	CallID              string       `json:"callId" dynamodbav:"CallID"` // sort key
	UserID              string       `json:"userId" dynamodbav:"UserID"`
	UserName            string       `json:"userName" dynamodbav:"UserName"`
	UserPictureURL      string       `json:"userPictureUrl" dynamodbav:"UserPictureURL"`
	AssistantName       string       `json:"assistantName" dynamodbav:"AssistantName"`
	AssistantPictureURL string       `json:"assistantPictureUrl" dynamodbav:"AssistantPictureURL"`
	RecordingURL        string       `json:"recordingUrl" dynamodbav:"RecordingURL"`
	CallTimestamp       string       `json:"callTimestamp" dynamodbav:"CallTimestamp"` // raw, as received
	Scores              RubricScores `json:"scores" dynamodbav:"Scores"`
	ScoreDescriptions   RubricTexts  `json:"scoreDescriptions" dynamodbav:"ScoreDescriptions"`
	RatingSummaries     RubricTexts  `json:"ratingSummaries" dynamodbav:"RatingSummaries"`
}
