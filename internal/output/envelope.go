package output

import (
	"encoding/json"
	"io"
)

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Meta    any  `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    any               `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc
}

// JSONSuccess writes {"success":true,"data":...,"meta":...}.
func JSONSuccess(w io.Writer, data any, meta map[string]any) error {
	resp := SuccessResponse{Success: true, Data: data}
	if len(meta) > 0 {
		resp.Meta = meta
	}
	return newEncoder(w).Encode(resp)
}

func JSONError(w io.Writer, code string, message string, details []ErrorDetail) error {
	return newEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
