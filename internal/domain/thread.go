package domain

// Thread is a MusicThread thread as returned by the "get thread" API.
type Thread struct {
	Key         string   `json:"key" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags" validate:"required"` // may be empty, must be present
	Author      Author   `json:"author" validate:"required"`
}

type Author struct {
	Name string `json:"name" validate:"required"`
}

func (t *Thread) HasDescription() bool {
	return len(t.Description) > 0
}

// ThreadResponse is the success envelope of GET /api/v0/thread/{key}.
type ThreadResponse struct {
	Thread Thread `json:"thread" validate:"required"`
	Links  []Link `json:"links" validate:"required,dive"`
}

// ErrorResponse is the body the API sends with status >= 400.
type ErrorResponse struct {
	Error *string `json:"error,omitempty"`
}

func (e *ErrorResponse) Message() string {
	if e == nil || e.Error == nil {
		return ""
	}
	return *e.Error
}
