package api

import (
	"fmt"

	"github.com/goccy/go-json"
)

// TranslateRequest asks for each text to be translated from SrcLang to
// TgtLang. Text accepts a single string or an array of strings.
type TranslateRequest struct {
	Text    TextValue `json:"text"`
	SrcLang string    `json:"src_lang"`
	TgtLang string    `json:"tgt_lang"`
}

// FillMaskRequest asks for the most probable fills for the mask token
// in Text. TopK falls back to the service default when unset.
type FillMaskRequest struct {
	Text    string `json:"text"`
	SrcLang string `json:"src_lang"`
	TopK    *int   `json:"topk,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Languages int    `json:"languages"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

// TextValue decodes a JSON string or array of strings into a slice.
type TextValue []string

func (v *TextValue) UnmarshalJSON(b []byte) error {
	if v == nil {
		return fmt.Errorf("text value: nil receiver")
	}
	if len(b) == 0 || string(b) == "null" {
		*v = nil
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("text value: %w", err)
		}
		*v = TextValue{s}
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("text value: %w", err)
		}
		*v = items
		return nil
	default:
		return fmt.Errorf("text value: expected string or array of strings")
	}
}

func (v TextValue) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal([]string(v))
}
