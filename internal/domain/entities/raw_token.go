package entities

import "encoding/json"

// RawToken is one token record as returned by the external chain-data
// provider. Field coverage differs wildly between providers and contracts;
// everything the normalizer probes for is optional, and the full payload is
// carried through in Metadata.
type RawToken struct {
	ContractAddress string          `json:"contract_address"`
	ContractType    string          `json:"contract_type"` // "ERC721", "ERC1155", ...
	TokenID         string          `json:"token_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Balance         json.RawMessage `json:"balance"` // number or string, coerced by the normalizer
	IsSpam          bool            `json:"is_spam"`
	Metadata        json.RawMessage `json:"metadata"`
}

// RawTokenMetadata covers the known metadata shapes the normalizer probes,
// in one struct of optional fields; anything it cannot represent stays in
// the raw payload. Creator and Authors entries may be strings or objects
// with a name, hence json.RawMessage.
type RawTokenMetadata struct {
	AnimationURL string            `json:"animation_url"`
	Video        string            `json:"video"`
	Content      string            `json:"content"`
	Image        string            `json:"image"`
	ImageURL     string            `json:"image_url"`
	MimeType     string            `json:"mime_type"`
	Artwork      *ArtworkRef       `json:"artwork"`
	Creator      json.RawMessage   `json:"creator"`
	Artist       json.RawMessage   `json:"artist"`
	Authors      []json.RawMessage `json:"authors"`
	Collection   json.RawMessage   `json:"collection"`
	ContractName string            `json:"contract_name"`
	NFTContract  *NamedRef         `json:"nft_contract"`
	Properties   *MetadataProps    `json:"properties"`
}

// ArtworkRef is a nested artwork pointer used as a cover-image fallback
type ArtworkRef struct {
	URI string `json:"uri"`
}

// NamedRef is any nested object probed only for its name
type NamedRef struct {
	Name string `json:"name"`
}

// MetadataProps is the nested properties bag some contracts use
type MetadataProps struct {
	Artist       json.RawMessage `json:"artist"`
	Creator      json.RawMessage `json:"creator"`
	Author       json.RawMessage `json:"author"`
	Collection   json.RawMessage `json:"collection"`
	ContractName string          `json:"contract_name"`
}
