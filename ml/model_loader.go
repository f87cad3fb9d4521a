package ml

import (
	"fmt"

	"github.com/goccy/go-json"
)

type modelHeader struct {
	Type string `json:"type"`
}

// DecodeModel picks the concrete classifier from the artifact's type field.
func DecodeModel(payload []byte) (*RandomForest, error) {
	var header modelHeader
	if err := json.Unmarshal(payload, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	switch header.Type {
	case ModelTypeRandomForest:
		model := &RandomForest{}
		if err := json.Unmarshal(payload, model); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
		}
		if err := model.validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: unsupported model type %q", ErrCorruptArtifact, header.Type)
	}
}
