package model

// Response is the envelope used for error bodies and simple acknowledgements.
type Response struct {
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewResponse(message string, data interface{}) Response {
	return Response{
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(kind, message string) Response {
	return Response{
		Message: message,
		Kind:    kind,
	}
}
