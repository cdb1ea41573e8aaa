package theme

import (
	"strings"

	"github.com/ziadkadry99/themegen/internal/llm"
)

// PromptMarkerID is the id of the plain-text script block every generated
// document carries with a description of its design system.
const PromptMarkerID = "design-prompt-data"

// Request is what the user asked for: a description, a reference file, or both.
type Request struct {
	Prompt     string
	Attachment *llm.Attachment
}

// Validate fails with ErrEmptyRequest when the request carries nothing to design from.
func (r Request) Validate() error {
	hasAttachment := r.Attachment != nil && len(r.Attachment.Data) > 0
	if strings.TrimSpace(r.Prompt) == "" && !hasAttachment {
		return ErrEmptyRequest
	}
	return nil
}

// systemPrompt defines the document convention the preview relies on:
// page sections keyed by id, hash routing owned by the document itself,
// and one embedded recreation prompt.
const systemPrompt = `You are a senior web designer. Produce exactly three distinct, complete website designs for the brief you are given.

Respond with a single JSON object and nothing else:
{"designs":[{"themeName":"...","description":"...","html":"..."},{...},{...}]}

Rules for every "html" value:
1. A complete, self-contained HTML5 document (<!DOCTYPE html> ... </html>). Inline all CSS and JavaScript. External fonts and images by URL are allowed.
2. The site is a single file with multiple pages. Each page is a top-level section with one of these ids: page-home, page-features (or page-services), page-contact, and optionally page-about.
3. Navigation uses the URL hash: links point to #page-home, #page-features and so on. A small script shows the section whose id matches location.hash (default page-home), hides the others, and listens for hashchange.
4. Include exactly one <script id="design-prompt-data" type="text/plain"> block containing a plain-text description of the design system (palette with hex values, typography, spacing, components, tone) detailed enough for another AI to recreate the design.
5. Responsive layout, accessible contrast, realistic copy for the brief. No lorem ipsum.

"themeName" is a short display name (2-4 words). "description" is one or two sentences explaining the design direction; light Markdown is allowed.
The three designs must differ clearly in layout, palette and typography.`

// attachmentNote tells the model how to treat a reference file.
const attachmentNote = "A reference file is attached. Use it as the primary source for content, branding and layout cues."

// defaultBrief is used when only an attachment was supplied.
const defaultBrief = "Design a website based on the attached reference."

// BuildCompletion assembles the completion request for one generation.
func BuildCompletion(req Request, model string, maxTokens int, temperature float64) llm.CompletionRequest {
	brief := strings.TrimSpace(req.Prompt)
	if brief == "" {
		brief = defaultBrief
	}

	user := llm.Message{Role: llm.RoleUser, Content: "Brief:\n" + brief}
	if req.Attachment != nil && len(req.Attachment.Data) > 0 {
		user.Content = attachmentNote + "\n\n" + user.Content
		user.Attachments = []llm.Attachment{*req.Attachment}
	}

	return llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			user,
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		JSONMode:    true,
	}
}
