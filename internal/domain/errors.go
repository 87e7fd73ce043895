package domain

import "errors"

var (
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUnknownProvider      = errors.New("unknown extraction provider")
	ErrModelNotConfigured   = errors.New("generative model is not configured")
	ErrModelUnavailable     = errors.New("generative model request failed")
	ErrUninterpretableReply = errors.New("model reply is not a JSON array of flight records")
)
