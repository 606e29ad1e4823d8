// Package nft wires the mood registry, the metadata encoder and a token
// standard into one collection exposing a mint endpoint and a token URI
// endpoint.
package nft

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/moodnft/pkg/nft/core"
	nfterrors "github.com/provide-io/moodnft/pkg/nft/errors"
	"github.com/provide-io/moodnft/pkg/nft/metadata"
	"github.com/provide-io/moodnft/pkg/nft/registry"
	"github.com/provide-io/moodnft/pkg/nft/token"
)

// Options describes a collection.
type Options struct {
	Name       string
	Symbol     string
	HappyImage string
	SadImage   string

	// Reference-compatibility switches, all off by default.
	LegacyMoodIndex bool
	TrailingBrace   bool
	UnguardedFields bool
}

// Collection is one mood NFT collection.
type Collection struct {
	std      token.Standard
	registry *registry.Registry
	encoder  *metadata.Encoder
	logger   hclog.Logger
}

// NewCollection builds a collection backed by an in-memory token.Ledger.
func NewCollection(opts Options, logger hclog.Logger) (*Collection, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	ledger := token.NewLedger(opts.Name, opts.Symbol, logger.Named("ledger"))
	return NewCollectionWithStandard(ledger, opts, logger)
}

// NewCollectionWithStandard builds a collection that delegates ownership
// to std. The collection name is read from std on every render.
func NewCollectionWithStandard(std token.Standard, opts Options, logger hclog.Logger) (*Collection, error) {
	if std == nil {
		return nil, fmt.Errorf("%w: token standard is nil", nfterrors.ErrInvalidConfig)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if strings.TrimSpace(opts.HappyImage) == "" {
		return nil, fmt.Errorf("%w: happy image is required", nfterrors.ErrInvalidConfig)
	}
	if strings.TrimSpace(opts.SadImage) == "" {
		return nil, fmt.Errorf("%w: sad image is required", nfterrors.ErrInvalidConfig)
	}

	var regOpts []registry.Option
	regOpts = append(regOpts, registry.WithLogger(logger.Named("registry")))
	if opts.LegacyMoodIndex {
		regOpts = append(regOpts, registry.WithLegacyMoodIndex())
	}
	reg := registry.New(registry.Images{Happy: opts.HappyImage, Sad: opts.SadImage}, regOpts...)

	var encOpts []metadata.Option
	encOpts = append(encOpts, metadata.WithLogger(logger.Named("metadata")))
	if opts.TrailingBrace {
		encOpts = append(encOpts, metadata.WithTrailingBrace())
	}
	if opts.UnguardedFields {
		encOpts = append(encOpts, metadata.WithUnguardedFields())
	}

	logger.Debug("🎭 Collection ready",
		"name", std.Name(),
		"symbol", std.Symbol(),
		"legacy_mood_index", opts.LegacyMoodIndex,
		"trailing_brace", opts.TrailingBrace,
		"unguarded_fields", opts.UnguardedFields,
	)

	return &Collection{
		std:      std,
		registry: reg,
		encoder:  metadata.NewEncoder(reg, encOpts...),
		logger:   logger,
	}, nil
}

// Mint allocates the next token to owner. Anyone may mint.
func (c *Collection) Mint(owner string) (core.TokenID, error) {
	id, err := c.registry.AllocateWith(func(id core.TokenID) error {
		return c.std.Issue(owner, id)
	})
	if err != nil {
		return 0, fmt.Errorf("mint: %w", err)
	}
	c.logger.Info("🎟️ Minted token", "id", id, "owner", owner)
	return id, nil
}

// TokenURI renders the metadata URI of id.
func (c *Collection) TokenURI(id core.TokenID) (string, error) {
	return c.encoder.Render(id, c.std.Name())
}

// MoodOf returns the current mood of id.
func (c *Collection) MoodOf(id core.TokenID) (core.Mood, error) {
	return c.registry.MoodOf(id)
}

// OwnerOf returns the owner id was issued to.
func (c *Collection) OwnerOf(id core.TokenID) (string, error) {
	if _, err := c.registry.MoodOf(id); err != nil {
		return "", err
	}
	return c.std.OwnerOf(id)
}

// TokenCounter returns the id the next mint will issue.
func (c *Collection) TokenCounter() core.TokenID {
	return c.registry.NextID()
}

func (c *Collection) Name() string   { return c.std.Name() }
func (c *Collection) Symbol() string { return c.std.Symbol() }
