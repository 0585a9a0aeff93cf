package domain

// Symptom is one selectable symptom known to the predictor service.
type Symptom struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SymptomContribution is a symptom's share of a predicted outcome.
// Weight is a 0..1 fraction; the weights of one prediction sum to 1.
type SymptomContribution struct {
	Symptom string  `json:"symptom"`
	Weight  float64 `json:"weight"`
}

// Prediction is the disease predictor's answer for a symptom set.
// The model itself is an external service; this is just its response shape.
type Prediction struct {
	Disease       string                `json:"disease"`
	Confidence    float64               `json:"confidence"`
	Contributions []SymptomContribution `json:"contributions,omitempty"`
	Precautions   []string              `json:"precautions,omitempty"`
}
