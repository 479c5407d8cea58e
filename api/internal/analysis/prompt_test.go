package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"derma-ai/api/internal/vision"
)

func TestBuildPromptRendersCase(t *testing.T) {
	vr := &vision.AnnotateResponse{
		LabelAnnotations: []vision.LabelAnnotation{
			{Description: "mole"},
			{Description: "skin"},
		},
	}
	an := &AnamnesisRecord{
		Duration: "2 weeks",
		Onset:    "sudden",
		Symptoms: []string{"Itching", "Bleeding"},
	}

	prompt := BuildPrompt(vr, an)

	assert.Contains(t, prompt, "Detected labels: mole, skin")
	assert.Contains(t, prompt, "Duration: 2 weeks")
	assert.Contains(t, prompt, "Onset: sudden")
	assert.Contains(t, prompt, "Symptoms: Itching, Bleeding")
}

func TestBuildPromptFallbacks(t *testing.T) {
	prompt := BuildPrompt(&vision.AnnotateResponse{}, &AnamnesisRecord{})

	assert.Contains(t, prompt, "Detected labels: None\n")
	assert.Contains(t, prompt, "Web entities: None\n")
	assert.Contains(t, prompt, "Duration: Not specified")
	assert.Contains(t, prompt, "Onset: Not specified")
	assert.Contains(t, prompt, "Location: Not specified")
	assert.Contains(t, prompt, "Symptoms: None reported")
	assert.Contains(t, prompt, "Previous treatments: None\n")
	assert.Contains(t, prompt, "Medical history: None reported")
	assert.Contains(t, prompt, "Current medications: None\n")
	assert.Contains(t, prompt, "Allergies: None known")
	assert.Contains(t, prompt, "Family history: None reported")
}

func TestBuildPromptWebEntities(t *testing.T) {
	vr := &vision.AnnotateResponse{
		WebDetection: &vision.WebDetection{
			WebEntities: []vision.WebEntity{
				{Description: "Nevus"},
				{Description: ""}, // unnamed entities are skipped
				{Description: "Melanocytic nevus"},
				{Description: "Dermatology"},
				{Description: "Skin cancer"},
				{Description: "Melanoma"},
				{Description: "Lentigo"},
			},
		},
	}

	prompt := BuildPrompt(vr, &AnamnesisRecord{})

	assert.Contains(t, prompt, "Web entities: Nevus, Melanocytic nevus, Dermatology, Skin cancer, Melanoma\n")
	assert.NotContains(t, prompt, "Lentigo")
}

func TestBuildPromptAllEntitiesUnnamed(t *testing.T) {
	vr := &vision.AnnotateResponse{
		WebDetection: &vision.WebDetection{
			WebEntities: []vision.WebEntity{{EntityID: "/e/1"}, {EntityID: "/e/2"}},
		},
	}
	prompt := BuildPrompt(vr, &AnamnesisRecord{})
	assert.Contains(t, prompt, "Web entities: None\n")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	vr := &vision.AnnotateResponse{
		LabelAnnotations: []vision.LabelAnnotation{{Description: "rash"}},
	}
	an := &AnamnesisRecord{Duration: "3 days", Symptoms: []string{"Pain"}}

	assert.Equal(t, BuildPrompt(vr, an), BuildPrompt(vr, an))
}

func TestBuildPromptCarriesSchemaContract(t *testing.T) {
	prompt := BuildPrompt(&vision.AnnotateResponse{}, &AnamnesisRecord{})

	for _, fragment := range []string{
		`"differential"`,
		`"urgency"`,
		`"clinicalNotes"`,
		`"recommendations"`,
		`"immediate"`,
		`"followUp"`,
		`"redFlags"`,
		"Provide exactly 3 differential diagnoses",
		"routine, soon, urgent, emergency",
		"Return ONLY valid JSON",
	} {
		assert.True(t, strings.Contains(prompt, fragment), "prompt must contain %q", fragment)
	}
}
