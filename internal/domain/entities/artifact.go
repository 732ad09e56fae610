package entities

import (
	"encoding/json"

	"github.com/volatiletech/null/v8"
)

// TokenStandard represents the token contract type
type TokenStandard string

const (
	StandardERC721  TokenStandard = "ERC721"
	StandardERC1155 TokenStandard = "ERC1155"
)

// MediaType classifies the primary media of an artifact
type MediaType string

const (
	MediaTypeImage   MediaType = "image"
	MediaTypeVideo   MediaType = "video"
	MediaTypeAudio   MediaType = "audio"
	MediaTypeArticle MediaType = "article"
	MediaTypeUnknown MediaType = "unknown"
)

// ArtifactID is the identity tuple of an artifact. Two artifacts are the
// same record iff all four fields match.
type ArtifactID struct {
	WalletID        string `json:"walletId"`
	Network         string `json:"network"`
	ContractAddress string `json:"contractAddress"`
	// TokenID is a string so arbitrarily large token numbers survive intact.
	TokenID string `json:"tokenId"`
}

// TokenKey is the wallet-independent part of the identity, used by the
// cross-wallet deduplication in the aggregation layer.
func (id ArtifactID) TokenKey() string {
	return id.Network + "/" + id.ContractAddress + "/" + id.TokenID
}

func (id ArtifactID) String() string {
	return id.WalletID + "/" + id.TokenKey()
}

// Media holds the extracted media references of an artifact
type Media struct {
	PrimaryURL string            `json:"primaryUrl,omitempty"`
	Type       MediaType         `json:"type"`
	CoverImage string            `json:"coverImage,omitempty"`
	Auxiliary  map[string]string `json:"auxiliary,omitempty"`
}

// Artifact is one token instance owned by one wallet on one network
type Artifact struct {
	ID            ArtifactID      `json:"id"`
	TokenStandard TokenStandard   `json:"tokenStandard"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Media         Media           `json:"media"`
	Balance       int             `json:"balance"` // quantity, meaningful for ERC1155 only
	IsSpam        bool            `json:"isSpam"`
	IsInCatalog   bool            `json:"isInCatalog"` // spam OR member of any catalog
	Creator       null.String     `json:"creator,omitempty"`
	ContractName  null.String     `json:"contractName,omitempty"`
	RawMetadata   json.RawMessage `json:"rawMetadata,omitempty"`
}
