package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents a linked wallet address
type Wallet struct {
	ID      uuid.UUID `json:"id"`
	Address string    `json:"address"`
	// FetchedNetworks lists networks for which an artifact fetch has
	// succeeded at least once; it only ever grows.
	FetchedNetworks []string  `json:"fetchedNetworks"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HasFetched reports whether a fetch for the network has ever succeeded
func (w *Wallet) HasFetched(network string) bool {
	for _, n := range w.FetchedNetworks {
		if n == network {
			return true
		}
	}
	return false
}

// MarkFetched records a successful fetch for the network, reporting whether
// the network was newly added.
func (w *Wallet) MarkFetched(network string) bool {
	if w.HasFetched(network) {
		return false
	}
	w.FetchedNetworks = append(w.FetchedNetworks, network)
	return true
}

// Clone returns a copy whose FetchedNetworks slice shares no backing storage
// with the original.
func (w *Wallet) Clone() *Wallet {
	copied := *w
	copied.FetchedNetworks = append([]string(nil), w.FetchedNetworks...)
	return &copied
}

// LinkWalletInput represents input for linking a wallet
type LinkWalletInput struct {
	Address  string   `json:"address" binding:"required"`
	Networks []string `json:"networks"`
}

// Delegation is one entry from the external delegation registry
type Delegation struct {
	Vault   string `json:"vault"`
	Type    string `json:"type"`
	ENSName string `json:"ensName,omitempty"`
}
