package analysis

import (
	"fmt"
	"strings"

	"derma-ai/api/internal/vision"
)

const maxWebEntities = 5

// BuildPrompt renders the vision annotations and patient history into the
// consultation instruction. The JSON schema embedded here is a contract with
// the response parser: changing the template means changing the
// ClinicalAnalysis types with it.
func BuildPrompt(vr *vision.AnnotateResponse, an *AnamnesisRecord) string {
	return fmt.Sprintf(promptTemplate,
		labelList(vr),
		webEntityList(vr),
		orElse(an.Duration, "Not specified"),
		orElse(an.Onset, "Not specified"),
		orElse(an.Location, "Not specified"),
		symptomList(an.Symptoms),
		orElse(an.PreviousTreatment, "None"),
		orElse(an.MedicalHistory, "None reported"),
		orElse(an.Medications, "None"),
		orElse(an.Allergies, "None known"),
		orElse(an.FamilyHistory, "None reported"),
	)
}

func orElse(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func labelList(vr *vision.AnnotateResponse) string {
	if vr == nil || len(vr.LabelAnnotations) == 0 {
		return "None"
	}
	descs := make([]string, 0, len(vr.LabelAnnotations))
	for _, l := range vr.LabelAnnotations {
		descs = append(descs, l.Description)
	}
	return strings.Join(descs, ", ")
}

func webEntityList(vr *vision.AnnotateResponse) string {
	if vr == nil || vr.WebDetection == nil {
		return "None"
	}
	var descs []string
	for _, e := range vr.WebDetection.WebEntities {
		if e.Description == "" {
			continue
		}
		descs = append(descs, e.Description)
		if len(descs) == maxWebEntities {
			break
		}
	}
	if len(descs) == 0 {
		return "None"
	}
	return strings.Join(descs, ", ")
}

func symptomList(symptoms []string) string {
	if len(symptoms) == 0 {
		return "None reported"
	}
	return strings.Join(symptoms, ", ")
}

const promptTemplate = `You are an experienced dermatologist providing consultation support to a family physician. Analyze this case and provide a structured differential diagnosis.

IMAGE ANALYSIS RESULTS:
- Detected labels: %s
- Web entities: %s

PATIENT HISTORY:
- Duration: %s
- Onset: %s
- Location: %s
- Symptoms: %s
- Previous treatments: %s
- Medical history: %s
- Current medications: %s
- Allergies: %s
- Family history: %s

Provide your analysis in JSON format with exactly this structure:
{
  "differential": [
    {
      "condition": "Most likely diagnosis name",
      "confidence": "High",
      "description": "Clinical reasoning in 2-3 sentences explaining why this diagnosis fits"
    },
    {
      "condition": "Second most likely diagnosis",
      "confidence": "Moderate",
      "description": "Clinical reasoning in 2-3 sentences"
    },
    {
      "condition": "Third differential diagnosis",
      "confidence": "Low",
      "description": "Clinical reasoning in 2-3 sentences"
    }
  ],
  "urgency": "routine",
  "clinicalNotes": [
    "Key clinical observation 1",
    "Key clinical observation 2",
    "Key clinical observation 3",
    "Key clinical observation 4"
  ],
  "recommendations": {
    "immediate": [
      "Specific diagnostic test or treatment action 1",
      "Specific diagnostic test or treatment action 2",
      "Specific patient education or management step"
    ],
    "followUp": [
      "Follow-up timeline and plan 1",
      "Follow-up timeline and plan 2",
      "Referral criteria if applicable"
    ],
    "redFlags": [
      "Warning sign that requires urgent evaluation 1",
      "Warning sign that requires urgent evaluation 2",
      "Complication to watch for"
    ]
  }
}

IMPORTANT:
- Provide exactly 3 differential diagnoses
- Set urgency to one of: routine, soon, urgent, emergency
- Be specific about treatments (include drug names, frequencies)
- Base recommendations on the complete clinical picture
- Return ONLY valid JSON, no markdown formatting`
