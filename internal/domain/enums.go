package domain

// Provider names the extraction strategy selected by configuration.
type Provider string

const (
	// ProviderAWS runs table detection plus header/record heuristics.
	ProviderAWS Provider = "AWS"
	// ProviderGemini sends the image straight to the vision model.
	ProviderGemini Provider = "GEMINI"
	// ProviderHybrid feeds detected tables as text to the vision model.
	ProviderHybrid Provider = "HYBRID"
)

// Providers lists every supported extraction provider.
var Providers = []Provider{ProviderAWS, ProviderGemini, ProviderHybrid}

// Accepted image content types for extraction.
const (
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
)

// AllowedContentTypes is the set of image types the extraction pipeline accepts.
var AllowedContentTypes = map[string]bool{
	ContentTypePNG:  true,
	ContentTypeJPEG: true,
}
