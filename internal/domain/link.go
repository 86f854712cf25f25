package domain

// Link is one submitted music item within a thread.
type Link struct {
	Key          string `json:"key" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Artist       string `json:"artist" validate:"required"`
	Description  string `json:"description"`
	Type         string `json:"type" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url" validate:"required"`
	SubmittedAt  string `json:"submitted_at" validate:"required"` // passed through to the feed verbatim
}

func (l *Link) HasDescription() bool {
	return len(l.Description) > 0
}
