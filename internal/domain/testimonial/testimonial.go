package testimonial

import (
	"errors"
	"strings"
	"time"
)

const maxMessageLen = 500

// Testimonial 為會員的使用心得，每個會員僅能留一則。
type Testimonial struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"user_email"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate 檢查留言內容。
func (t Testimonial) Validate() error {
	if t.UserEmail == "" {
		return errors.New("user email is required")
	}
	if strings.TrimSpace(t.Message) == "" {
		return errors.New("message is required")
	}
	if len(t.Message) > maxMessageLen {
		return errors.New("message too long")
	}
	if t.Rating < 1 || t.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

var ErrAlreadySubmitted = errors.New("testimonial already submitted")
