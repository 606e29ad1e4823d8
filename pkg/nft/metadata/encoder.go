// Package metadata renders a token's mood as a self-contained data URI
// carrying a base64-encoded JSON document.
package metadata

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/moodnft/pkg/nft/core"
	nfterrors "github.com/provide-io/moodnft/pkg/nft/errors"
	"github.com/provide-io/moodnft/pkg/nft/registry"
)

const (
	// SchemePrefix declares the media type and encoding of a rendered URI.
	SchemePrefix = "data:application/json;base64,"

	Description = "An NFT that reflects the owners mood."
	TraitType   = "moodiness"
	TraitValue  = 100
)

// MoodSource is the read side of the mood registry.
type MoodSource interface {
	MoodOf(id core.TokenID) (core.Mood, error)
	Images() registry.Images
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithTrailingBrace appends a stray closing brace after the encoded
// payload, outside the base64 data, as the reference renderer does.
func WithTrailingBrace() Option {
	return func(e *Encoder) {
		e.trailingBrace = true
	}
}

// WithUnguardedFields interpolates the collection name and image reference
// verbatim even when they would break the document structure.
func WithUnguardedFields() Option {
	return func(e *Encoder) {
		e.unguarded = true
	}
}

// WithLogger attaches a logger.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Encoder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Encoder renders token URIs. It never mutates the registry.
type Encoder struct {
	source        MoodSource
	trailingBrace bool
	unguarded     bool
	logger        hclog.Logger
}

// NewEncoder returns an Encoder reading moods from source.
func NewEncoder(source MoodSource, opts ...Option) *Encoder {
	e := &Encoder{
		source: source,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render returns the data URI describing token id. Rendering the same id
// twice without an intervening mutation yields identical output.
func (e *Encoder) Render(id core.TokenID, collectionName string) (string, error) {
	mood, err := e.source.MoodOf(id)
	if err != nil {
		return "", err
	}

	rec := Record{
		Name:        collectionName,
		Description: Description,
		Attributes:  []Attribute{{TraitType: TraitType, Value: TraitValue}},
		Image:       SelectImage(e.source.Images(), mood),
	}

	if !e.unguarded {
		if err := rec.validate(); err != nil {
			return "", fmt.Errorf("render token %d: %w", id, err)
		}
	}

	doc := rec.serialize()
	uri := SchemePrefix + base64.StdEncoding.EncodeToString([]byte(doc))
	if e.trailingBrace {
		uri += "}"
	}

	e.logger.Trace("🖼️ Rendered token URI", "id", id, "mood", mood, "image", rec.Image, "bytes", len(uri))
	return uri, nil
}

// SelectImage maps a mood to its image reference. Only HAPPY selects the
// happy image; every other mood, including variants added later, falls
// back to the sad image unless given its own case here.
func SelectImage(images registry.Images, mood core.Mood) string {
	if mood == core.MoodHappy {
		return images.Happy
	}
	return images.Sad
}

// Decode strips the scheme prefix and any stray trailing brace from a
// rendered URI and returns the JSON document it carries.
func Decode(uri string) ([]byte, error) {
	payload, ok := strings.CutPrefix(uri, SchemePrefix)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q prefix", nfterrors.ErrMalformedTokenURI, SchemePrefix)
	}
	// '}' is outside the base64 alphabet so it can only be the stray brace.
	payload = strings.TrimSuffix(payload, "}")

	doc, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nfterrors.ErrMalformedTokenURI, err)
	}
	return doc, nil
}
