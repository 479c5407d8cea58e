package analysis

import (
	"derma-ai/api/internal/vision"
)

// AnamnesisRecord is the structured patient history collected by the intake
// form. Every field is optional; the prompt builder substitutes a fixed
// fallback for anything left empty.
type AnamnesisRecord struct {
	Duration          string   `json:"duration"`
	Onset             string   `json:"onset"`
	Location          string   `json:"location"`
	Symptoms          []string `json:"symptoms"`
	PreviousTreatment string   `json:"previousTreatment"`
	MedicalHistory    string   `json:"medicalHistory"`
	Medications       string   `json:"medications"`
	Allergies         string   `json:"allergies"`
	FamilyHistory     string   `json:"familyHistory"`
}

type DifferentialEntry struct {
	Condition   string `json:"condition"`
	Confidence  string `json:"confidence"`
	Description string `json:"description"`
}

type Recommendations struct {
	Immediate []string `json:"immediate"`
	FollowUp  []string `json:"followUp"`
	RedFlags  []string `json:"redFlags"`
}

// ClinicalAnalysis mirrors the JSON schema the prompt demands from the model.
// The model's reply is trusted to match it; no field counts are enforced.
type ClinicalAnalysis struct {
	Differential    []DifferentialEntry `json:"differential"`
	Urgency         string              `json:"urgency"`
	ClinicalNotes   []string            `json:"clinicalNotes"`
	Recommendations Recommendations     `json:"recommendations"`
}

type AnalysisRequest struct {
	Image     string           `json:"image"`
	Anamnesis *AnamnesisRecord `json:"anamnesis"`
}

// AnalysisResponse is the merged result: request timestamp, the vision payload
// passed through verbatim, and the clinical analysis flattened alongside.
type AnalysisResponse struct {
	Timestamp  string                   `json:"timestamp"`
	VisionData *vision.AnnotateResponse `json:"visionData"`
	ClinicalAnalysis
}
