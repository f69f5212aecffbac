package driven

import "context"

// OCRService recognises text in an image. The recognition engine itself
// is an external collaborator; only the decision of when to invoke it
// lives in the extraction pipeline.
type OCRService interface {
	// Recognise returns the text found in the image bytes.
	// An unreadable image yields an empty string and an error wrapping
	// domain.ErrOCR; callers treat both the same way and move on.
	Recognise(ctx context.Context, image []byte) (string, error)

	// Available reports whether the recognition engine can be used in
	// this build/environment. When false, Recognise returns empty text.
	Available() bool
}
