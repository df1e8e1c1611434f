package interview

import (
	"encoding/json"
	"fmt"
	"time"
)

// Response is a recorded answer. A nil Answer marks a skipped question.
type Response struct {
	QuestionID string
	Answer     Answer
	Weight     int
	Timestamp  time.Time
}

func (r Response) Skipped() bool {
	return r.Answer == nil
}

func (r Response) Kind() Kind {
	if r.Skipped() {
		return KindSkipped
	}
	return r.Answer.Kind()
}

type responseJSON struct {
	QuestionID string          `json:"question_id"`
	Kind       Kind            `json:"kind"`
	Value      json.RawMessage `json:"value"`
	Weight     int             `json:"weight"`
	Timestamp  time.Time       `json:"timestamp"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	var value any
	switch v := r.Answer.(type) {
	case nil:
		value = nil
	case SingleChoice:
		value = v.Value
	case MultiChoice:
		value = v.Choices
	case Scale:
		value = v.Value
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return json.Marshal(responseJSON{
		QuestionID: r.QuestionID,
		Kind:       r.Kind(),
		Value:      raw,
		Weight:     r.Weight,
		Timestamp:  r.Timestamp,
	})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var doc responseJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var answer Answer
	switch doc.Kind {
	case KindSkipped:
	case KindSingle:
		var v string
		if err := json.Unmarshal(doc.Value, &v); err != nil {
			return fmt.Errorf("response %s: %w", doc.QuestionID, err)
		}
		answer = SingleChoice{Value: v}
	case KindMulti:
		var v []string
		if err := json.Unmarshal(doc.Value, &v); err != nil {
			return fmt.Errorf("response %s: %w", doc.QuestionID, err)
		}
		answer = MultiChoice{Choices: v}
	case KindScale:
		var v int
		if err := json.Unmarshal(doc.Value, &v); err != nil {
			return fmt.Errorf("response %s: %w", doc.QuestionID, err)
		}
		answer = Scale{Value: v}
	default:
		return fmt.Errorf("response %s: unknown kind %q", doc.QuestionID, doc.Kind)
	}

	*r = Response{
		QuestionID: doc.QuestionID,
		Answer:     answer,
		Weight:     doc.Weight,
		Timestamp:  doc.Timestamp,
	}
	return nil
}
