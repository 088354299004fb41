package middleware

type Response struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
