package notification

import "strings"

const (
	MaxMessageLength = 1000
	MaxLinkLength    = 2048
)

type Message struct {
	text string
}

func NewMessage(s string) (Message, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Message{}, ErrEmptyMessage
	}
	if len(t) > MaxMessageLength {
		return Message{}, ErrMessageTooLong
	}
	return Message{text: t}, nil
}

func (m Message) String() string { return m.text }

// Link is an optional deep-link target. The zero value means "no link".
type Link struct {
	target string
}

func NewLink(s *string) (Link, error) {
	if s == nil {
		return Link{}, nil
	}
	t := strings.TrimSpace(*s)
	if len(t) > MaxLinkLength {
		return Link{}, ErrLinkTooLong
	}
	return Link{target: t}, nil
}

func (l Link) IsZero() bool { return l.target == "" }

func (l Link) String() string { return l.target }

// Ptr returns nil for an absent link.
func (l Link) Ptr() *string {
	if l.target == "" {
		return nil
	}
	s := l.target
	return &s
}
