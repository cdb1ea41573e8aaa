package llm

import (
	"encoding/base64"
	"strings"
)

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Attachment is an inline binary part sent alongside a message, such as a
// reference screenshot or a brief in PDF form.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the attachment bytes.
func (a Attachment) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURI returns the attachment as a data: URI.
func (a Attachment) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + a.Base64()
}

// IsImage reports whether the attachment carries an image MIME type.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MIMEType, "image/")
}

// IsText reports whether the attachment can be inlined as plain text.
func (a Attachment) IsText() bool {
	return strings.HasPrefix(a.MIMEType, "text/") || a.MIMEType == "application/json"
}

// Message represents a single message in a conversation.
type Message struct {
	Role        Role
	Content     string
	Attachments []Attachment
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// CompletionResponse contains the result of an LLM completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
