package vision

import "encoding/json"

type LabelAnnotation struct {
	MID         string  `json:"mid,omitempty"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score,omitempty"`
	Topicality  float64 `json:"topicality,omitempty"`
}

type WebEntity struct {
	EntityID    string  `json:"entityId,omitempty"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

type WebDetection struct {
	WebEntities []WebEntity `json:"webEntities,omitempty"`
}

// AnnotateResponse is one annotation result. Labels and web entities are typed
// because the prompt builder reads them; everything else the service returned
// (image properties and whatever it adds later) rides along in the verbatim
// payload, which is what gets re-emitted in the API response.
type AnnotateResponse struct {
	LabelAnnotations []LabelAnnotation
	WebDetection     *WebDetection

	raw json.RawMessage
}

type annotateResponseJSON struct {
	LabelAnnotations []LabelAnnotation `json:"labelAnnotations,omitempty"`
	WebDetection     *WebDetection     `json:"webDetection,omitempty"`
}

func (r *AnnotateResponse) UnmarshalJSON(b []byte) error {
	var a annotateResponseJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	r.LabelAnnotations = a.LabelAnnotations
	r.WebDetection = a.WebDetection
	r.raw = append(r.raw[:0], b...)
	return nil
}

func (r *AnnotateResponse) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	// Struct-literal values (tests, fakes) have no wire payload to pass through.
	return json.Marshal(annotateResponseJSON{
		LabelAnnotations: r.LabelAnnotations,
		WebDetection:     r.WebDetection,
	})
}
