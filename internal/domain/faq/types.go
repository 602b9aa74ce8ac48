package faq

import "time"

// Record is a stored question/answer pair. Answer holds rich-text markup verbatim.
type Record struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for a new FAQ.
type CreateRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// UpdateRequest carries a partial update. Nil fields are left untouched.
type UpdateRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// Empty reports whether the update supplies no fields.
func (r UpdateRequest) Empty() bool {
	return r.Question == nil && r.Answer == nil
}
