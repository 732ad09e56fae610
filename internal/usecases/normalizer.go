package usecases

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"

	"artifact-vault.backend/internal/domain/entities"
	domainerrors "artifact-vault.backend/internal/domain/errors"
)

// NormalizeToken converts one raw provider token into a canonical artifact.
// It is a pure function: malformed metadata degrades to empty fields, and
// only a record with no usable identity is rejected so the caller can skip
// it without failing the batch.
func NormalizeToken(walletID, network string, raw entities.RawToken) (*entities.Artifact, error) {
	if raw.ContractAddress == "" || raw.TokenID == "" {
		return nil, domainerrors.ErrValidation
	}

	standard := entities.StandardERC721
	if raw.ContractType == string(entities.StandardERC1155) {
		standard = entities.StandardERC1155
	}

	meta := decodeMetadata(raw.Metadata)

	return &entities.Artifact{
		ID: entities.ArtifactID{
			WalletID:        walletID,
			Network:         network,
			ContractAddress: raw.ContractAddress,
			TokenID:         raw.TokenID,
		},
		TokenStandard: standard,
		Title:         raw.Title,
		Description:   raw.Description,
		Media:         extractMedia(meta),
		Balance:       coerceBalance(raw.Balance),
		IsSpam:        raw.IsSpam,
		IsInCatalog:   raw.IsSpam, // spam counts as organized
		Creator:       extractCreator(meta),
		ContractName:  extractContractName(meta),
		RawMetadata:   raw.Metadata,
	}, nil
}

// decodeMetadata tolerates absent or malformed metadata by returning the
// zero shape; unresolved fields then fall out as nulls.
func decodeMetadata(raw json.RawMessage) entities.RawTokenMetadata {
	var meta entities.RawTokenMetadata
	if len(raw) == 0 {
		return meta
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return entities.RawTokenMetadata{}
	}
	return meta
}

// extractMedia picks the primary media reference in priority order:
// animation/video, then textual content, then image. A recognizable mime
// type overrides the tag derived from the field.
func extractMedia(meta entities.RawTokenMetadata) entities.Media {
	media := entities.Media{Type: entities.MediaTypeUnknown}

	switch {
	case meta.AnimationURL != "":
		media.PrimaryURL = meta.AnimationURL
		media.Type = entities.MediaTypeVideo
	case meta.Video != "":
		media.PrimaryURL = meta.Video
		media.Type = entities.MediaTypeVideo
	case meta.Content != "":
		media.PrimaryURL = meta.Content
		media.Type = entities.MediaTypeArticle
	case meta.Image != "":
		media.PrimaryURL = meta.Image
		media.Type = entities.MediaTypeImage
	case meta.ImageURL != "":
		media.PrimaryURL = meta.ImageURL
		media.Type = entities.MediaTypeImage
	}

	if t := mediaTypeFromMime(meta.MimeType); t != entities.MediaTypeUnknown {
		media.Type = t
	}

	switch {
	case meta.Image != "":
		media.CoverImage = meta.Image
	case meta.ImageURL != "":
		media.CoverImage = meta.ImageURL
	case meta.Artwork != nil && meta.Artwork.URI != "":
		media.CoverImage = meta.Artwork.URI
	}

	aux := map[string]string{}
	if meta.AnimationURL != "" {
		aux["animation"] = meta.AnimationURL
	}
	if meta.Image != "" {
		aux["image"] = meta.Image
	}
	if meta.ImageURL != "" {
		aux["image_url"] = meta.ImageURL
	}
	if len(aux) > 0 {
		media.Auxiliary = aux
	}

	return media
}

func mediaTypeFromMime(mime string) entities.MediaType {
	switch {
	case strings.HasPrefix(mime, "video/"):
		return entities.MediaTypeVideo
	case strings.HasPrefix(mime, "audio/"):
		return entities.MediaTypeAudio
	case strings.HasPrefix(mime, "image/"):
		return entities.MediaTypeImage
	default:
		return entities.MediaTypeUnknown
	}
}

// extractCreator probes the known creator fields in order; first match wins
func extractCreator(meta entities.RawTokenMetadata) null.String {
	candidates := []json.RawMessage{meta.Creator, meta.Artist}
	if len(meta.Authors) > 0 {
		candidates = append(candidates, meta.Authors[0])
	}
	if meta.Properties != nil {
		candidates = append(candidates, meta.Properties.Artist, meta.Properties.Creator, meta.Properties.Author)
	}

	for _, c := range candidates {
		if name := nameFromValue(c); name != "" {
			return null.StringFrom(name)
		}
	}
	return null.String{}
}

// extractContractName probes the known collection-name fields in order
func extractContractName(meta entities.RawTokenMetadata) null.String {
	if name := nameFromValue(meta.Collection); name != "" {
		return null.StringFrom(name)
	}
	if meta.ContractName != "" {
		return null.StringFrom(meta.ContractName)
	}
	if meta.NFTContract != nil && meta.NFTContract.Name != "" {
		return null.StringFrom(meta.NFTContract.Name)
	}
	if meta.Properties != nil {
		if name := nameFromValue(meta.Properties.Collection); name != "" {
			return null.StringFrom(name)
		}
		if meta.Properties.ContractName != "" {
			return null.StringFrom(meta.Properties.ContractName)
		}
	}
	return null.String{}
}

// nameFromValue accepts either a plain string or an object with a name
func nameFromValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var ref entities.NamedRef
	if err := json.Unmarshal(raw, &ref); err == nil {
		return ref.Name
	}
	return ""
}

// coerceBalance turns the provider balance into an integer quantity.
// Absent or non-numeric values default to 1; negatives clamp to 0.
func coerceBalance(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f < 0 {
			return 0
		}
		return int(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			if n < 0 {
				return 0
			}
			return n
		}
	}
	return 1
}
