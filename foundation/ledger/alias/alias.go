// Package alias maintains human readable names for ledger accounts so API
// callers can trade as "@alice" instead of a raw account id.
package alias

import (
	"errors"
	"strings"
	"sync"

	"github.com/launchlab/launchpad/foundation/ledger/database"
)

// ErrExists is returned when registering an alias that is already taken.
var ErrExists = errors.New("alias already registered")

// Registry maintains the mapping between aliases and account ids.
type Registry struct {
	mu      sync.RWMutex
	aliases map[string]database.AccountID
}

// New constructs a registry, seeding it with any initial aliases.
func New(initial map[string]string) (*Registry, error) {
	r := Registry{
		aliases: make(map[string]database.AccountID),
	}

	for alias, accountStr := range initial {
		accountID, err := database.ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}
		r.aliases[normalize(alias)] = accountID
	}

	return &r, nil
}

// Register maps an alias to an account id.
func (r *Registry) Register(alias string, accountID database.AccountID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}

	alias = normalize(alias)
	if alias == "" {
		return errors.New("alias is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.aliases[alias]; exists {
		return ErrExists
	}

	r.aliases[alias] = accountID

	return nil
}

// Resolve turns a caller supplied value into an account id. A leading @
// always marks an alias; anything else is tried as an alias first and
// otherwise treated as a raw account id.
func (r *Registry) Resolve(value string) (database.AccountID, error) {
	trimmed := strings.TrimSpace(value)

	if strings.HasPrefix(trimmed, "@") {
		alias := normalize(trimmed)

		r.mu.RLock()
		accountID, exists := r.aliases[alias]
		r.mu.RUnlock()

		if !exists {
			return "", errors.New("unknown alias " + trimmed)
		}

		return accountID, nil
	}

	r.mu.RLock()
	accountID, exists := r.aliases[normalize(trimmed)]
	r.mu.RUnlock()

	if exists {
		return accountID, nil
	}

	return database.ToAccountID(trimmed)
}

// Lookup returns the alias for an account id if one is registered,
// otherwise the account id itself.
func (r *Registry) Lookup(accountID database.AccountID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for alias, id := range r.aliases {
		if id == accountID {
			return "@" + alias
		}
	}

	return string(accountID)
}

// Copy returns the current set of aliases.
func (r *Registry) Copy() map[string]database.AccountID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make(map[string]database.AccountID, len(r.aliases))
	for alias, accountID := range r.aliases {
		aliases[alias] = accountID
	}

	return aliases
}

// normalize lowercases an alias and strips any leading @.
func normalize(alias string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(alias), "@"))
}
