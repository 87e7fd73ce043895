package port

import "context"

// ModelInput carries one request to a generative model. Image is optional;
// text-only requests leave it nil.
type ModelInput struct {
	Prompt   string
	Image    []byte
	MIMEType string
}

// ModelOutput contains the raw reply text of a generative model.
type ModelOutput struct {
	Text      string
	ModelUsed string
}

// VisionModel abstracts a vision-capable generative language model.
type VisionModel interface {
	Generate(ctx context.Context, input ModelInput) (*ModelOutput, error)
}
