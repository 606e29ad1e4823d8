package errors

import "errors"

var (
	// Registry errors 🎭
	ErrUnknownIdentifier = errors.New("❌ unknown token identifier")

	// Encoding errors 📦
	ErrMalformedEncodingInput = errors.New("❌ field contains structurally significant characters")
	ErrMalformedTokenURI      = errors.New("❌ malformed token URI")

	// Collaborator errors 🔒
	ErrInvalidReceiver = errors.New("❌ invalid token receiver")
	ErrAlreadyIssued   = errors.New("❌ token already issued")

	// Configuration errors ⚙️
	ErrInvalidConfig = errors.New("❌ invalid configuration")
)
