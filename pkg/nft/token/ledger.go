// Package token provides the token-standard collaborator the mood core
// delegates ownership to.
package token

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/moodnft/pkg/nft/core"
	nfterrors "github.com/provide-io/moodnft/pkg/nft/errors"
)

// Standard is the subset of a non-fungible token standard the mood core
// consumes.
type Standard interface {
	// Issue binds id to owner after checking the receiver.
	Issue(owner string, id core.TokenID) error
	Name() string
	Symbol() string
	OwnerOf(id core.TokenID) (string, error)
}

// Ledger is an in-memory Standard. It records who each token was issued
// to and nothing more.
type Ledger struct {
	name   string
	symbol string
	logger hclog.Logger

	mu     sync.RWMutex
	owners map[core.TokenID]string
}

// NewLedger returns an empty ledger for the named collection.
func NewLedger(name, symbol string, logger hclog.Logger) *Ledger {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Ledger{
		name:   name,
		symbol: symbol,
		logger: logger,
		owners: make(map[core.TokenID]string),
	}
}

func (l *Ledger) Name() string   { return l.name }
func (l *Ledger) Symbol() string { return l.symbol }

// Issue implements Standard.
func (l *Ledger) Issue(owner string, id core.TokenID) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return fmt.Errorf("issue token %d: %w: empty owner", id, nfterrors.ErrInvalidReceiver)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.owners[id]; ok {
		return fmt.Errorf("issue token %d: %w to %s", id, nfterrors.ErrAlreadyIssued, prev)
	}
	l.owners[id] = owner

	l.logger.Info("✨ Transfer", "from", "", "to", owner, "token_id", id, "collection", l.symbol)
	return nil
}

// OwnerOf implements Standard.
func (l *Ledger) OwnerOf(id core.TokenID) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[id]
	if !ok {
		return "", fmt.Errorf("owner of token %d: %w", id, nfterrors.ErrUnknownIdentifier)
	}
	return owner, nil
}

// Issued returns the number of issued tokens.
func (l *Ledger) Issued() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.owners)
}
