package model

//
// The data field of a result record
//

import (
	"encoding/json"
	"strings"
)

// Template is the structural shape of the data of a run.
type Template string

const (
	// TemplateSequential indicates a list of trials (e.g., jsPsych experiments).
	TemplateSequential = Template("sequential")

	// TemplateSurvey indicates a mapping from question id to response.
	TemplateSurvey = Template("survey")

	// TemplateUnknown indicates data with any other shape.
	TemplateUnknown = Template("unknown")
)

// RunData is the data field of a run. We resolve the shape of the data
// once when ingesting a record, so the consumers can switch on the
// Template field rather than inspecting the raw value again.
//
// Exactly one of Trials, Questions, and Raw is meaningful, depending on
// the value of Template. The zero value is an empty unknown dataset.
type RunData struct {
	// Template is the shape of the data.
	Template Template

	// Trials contains the list entries when Template is TemplateSequential.
	Trials []any

	// Questions contains the mapping when Template is TemplateSurvey.
	Questions map[string]any

	// Raw contains the raw value when Template is TemplateUnknown.
	Raw any
}

// NewRunData resolves the shape of the given value. A string containing
// a JSON list or object (which is what we read back from CSV files)
// is decoded before resolving the shape.
func NewRunData(value any) *RunData {
	if s, ok := value.(string); ok {
		value = maybeDecodeJSONString(s)
	}
	switch v := value.(type) {
	case *RunData:
		return v
	case []any:
		return &RunData{Template: TemplateSequential, Trials: v}
	case []map[string]any:
		trials := make([]any, 0, len(v))
		for _, entry := range v {
			trials = append(trials, entry)
		}
		return &RunData{Template: TemplateSequential, Trials: trials}
	case map[string]any:
		return &RunData{Template: TemplateSurvey, Questions: v}
	default:
		return &RunData{Template: TemplateUnknown, Raw: v}
	}
}

func maybeDecodeJSONString(s string) any {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return s
	}
	var out any
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return s
	}
	return out
}

// Len returns the number of trials or questions.
func (d *RunData) Len() int {
	if d == nil {
		return 0
	}
	switch d.Template {
	case TemplateSequential:
		return len(d.Trials)
	case TemplateSurvey:
		return len(d.Questions)
	default:
		if d.Raw == nil || d.Raw == "" {
			return 0
		}
		return 1
	}
}

// IsEmpty returns whether this run does not contain any data.
func (d *RunData) IsEmpty() bool {
	return d.Len() <= 0
}

// Value returns the data using its original shape.
func (d *RunData) Value() any {
	if d == nil {
		return nil
	}
	switch d.Template {
	case TemplateSequential:
		return d.Trials
	case TemplateSurvey:
		return d.Questions
	default:
		return d.Raw
	}
}

// LastTrial returns the trial object at the given distance from the
// end of a sequential dataset (0 is the last trial) and whether it exists.
// The jsPsych entries wrap the trial within a "trialdata" object, which
// is what we return when present.
func (d *RunData) LastTrial(distance int) (map[string]any, bool) {
	if d == nil || d.Template != TemplateSequential {
		return nil, false
	}
	idx := len(d.Trials) - 1 - distance
	if idx < 0 || idx >= len(d.Trials) {
		return nil, false
	}
	entry, ok := d.Trials[idx].(map[string]any)
	if !ok {
		return nil, false
	}
	if trialdata, ok := entry["trialdata"].(map[string]any); ok {
		return trialdata, true
	}
	return entry, true
}

// MarshalJSON implements json.Marshaler.
func (d *RunData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *RunData) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*d = *NewRunData(value)
	return nil
}

// String returns the JSON representation of the data.
func (d *RunData) String() string {
	data, err := d.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}
