package llm

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMIME sniffs data and returns its media type without parameters.
func DetectMIME(data []byte) string {
	mt, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}

// NewAttachment builds an attachment whose MIME type is sniffed from data.
// Declared types from uploads or file extensions are not trusted.
func NewAttachment(name string, data []byte) Attachment {
	return Attachment{Name: name, MIMEType: DetectMIME(data), Data: data}
}

// ReadAttachment loads a reference file from disk, refusing files larger
// than maxBytes when maxBytes is positive.
func ReadAttachment(path string, maxBytes int64) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("attachment %s is %d bytes, limit is %d", path, info.Size(), maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}
	a := NewAttachment(filepath.Base(path), data)
	return &a, nil
}
