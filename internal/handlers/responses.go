package handlers

// ErrorResponse is the JSON body returned to htmx requests that cannot be
// answered with a page.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
