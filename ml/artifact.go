package ml

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/multierr"
)

var (
	ErrCorruptArtifact  = errors.New("corrupt artifact")
	ErrArtifactMismatch = errors.New("model and feature manifest do not match")
)

// Manifest is the feature order a model was trained with. ModelDigest ties it to
// the exact model bytes written in the same run.
type Manifest struct {
	Features    []string  `json:"features"`
	ModelType   string    `json:"model_type"`
	ModelDigest string    `json:"model_sha256"`
	RunID       string    `json:"run_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaveArtifacts stages both files next to their targets and renames them into
// place only after both are fully written and synced. The previous model is set
// aside first and put back if the manifest cannot be installed, so a failed
// save leaves the earlier pair intact.
func SaveArtifacts(modelPath, manifestPath string, model *RandomForest, runID string) (*Manifest, error) {
	if model == nil {
		return nil, errors.New("model is nil")
	}
	if err := model.validate(); err != nil {
		return nil, err
	}

	modelBytes, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	manifest := &Manifest{
		Features:    model.FeatureNames(),
		ModelType:   model.Type,
		ModelDigest: digest(modelBytes),
		RunID:       runID,
		CreatedAt:   time.Now().UTC(),
	}
	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	modelTmp, err := stageFile(modelPath, modelBytes)
	if err != nil {
		return nil, fmt.Errorf("write model: %w", err)
	}
	manifestTmp, err := stageFile(manifestPath, manifestBytes)
	if err != nil {
		os.Remove(modelTmp)
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	backup, err := setAside(modelPath)
	if err != nil {
		os.Remove(modelTmp)
		os.Remove(manifestTmp)
		return nil, fmt.Errorf("back up model: %w", err)
	}
	if err := os.Rename(modelTmp, modelPath); err != nil {
		os.Remove(modelTmp)
		os.Remove(manifestTmp)
		return nil, multierr.Append(fmt.Errorf("install model: %w", err), restore(backup, modelPath))
	}
	if err := os.Rename(manifestTmp, manifestPath); err != nil {
		os.Remove(manifestTmp)
		return nil, multierr.Append(fmt.Errorf("install manifest: %w", err), restore(backup, modelPath))
	}
	if backup != "" {
		os.Remove(backup)
	}
	return manifest, nil
}

// setAside moves an existing file to a sibling backup name. It returns "" when
// there was nothing to move.
func setAside(path string) (string, error) {
	if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".bak-*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	if err := os.Rename(path, name); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// restore puts a set-aside file back, or removes the new file when there was no
// previous one.
func restore(backup, path string) error {
	if backup == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove new model: %w", err)
		}
		return nil
	}
	if err := os.Rename(backup, path); err != nil {
		return fmt.Errorf("restore model: %w", err)
	}
	return nil
}

// LoadArtifacts reads both artifacts and checks that they belong together.
func LoadArtifacts(modelPath, manifestPath string) (*RandomForest, *Manifest, error) {
	modelBytes, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read model: %w", err)
	}
	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
		return nil, nil, fmt.Errorf("%w: manifest: %v", ErrCorruptArtifact, err)
	}
	if len(manifest.Features) == 0 {
		return nil, nil, fmt.Errorf("%w: manifest lists no features", ErrCorruptArtifact)
	}
	if manifest.ModelDigest == "" {
		return nil, nil, fmt.Errorf("%w: manifest has no model digest", ErrCorruptArtifact)
	}
	if manifest.ModelDigest != digest(modelBytes) {
		return nil, nil, fmt.Errorf("%w: model digest differs from manifest", ErrArtifactMismatch)
	}

	model, err := DecodeModel(modelBytes)
	if err != nil {
		return nil, nil, err
	}
	if !sameNames(manifest.Features, model.Features) {
		return nil, nil, fmt.Errorf("%w: manifest %v, model %v", ErrArtifactMismatch, manifest.Features, model.Features)
	}
	return model, &manifest, nil
}

func stageFile(target string, data []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
