package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wikispace/internal/model"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Seed is the start-of-process data set.
type Seed struct {
	Spaces []model.Space `json:"spaces" yaml:"spaces" toml:"spaces"`
	Pages  []model.Page  `json:"pages" yaml:"pages" toml:"pages"`
}

// DefaultSeed returns the built-in demo data.
func DefaultSeed() Seed {
	return Seed{Spaces: MockSpaces(), Pages: MockPages()}
}

// Option turns the seed into a store option.
func (sd Seed) Option() Option {
	return WithSeed(sd.Spaces, sd.Pages)
}

// LoadSeedFile reads a seed from .yaml/.yml, .toml or .json, chosen by extension.
func LoadSeedFile(path string) (Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	sd, err := ParseSeed(b, filepath.Ext(path))
	if err != nil {
		return Seed{}, fmt.Errorf("seed %s: %w", path, err)
	}
	return sd, nil
}

// ParseSeed decodes b according to ext (".yaml", ".yml", ".toml", ".json") and validates it.
func ParseSeed(b []byte, ext string) (Seed, error) {
	sd, err := DecodeSeed(b, ext)
	if err != nil {
		return Seed{}, err
	}
	if err := sd.Validate(); err != nil {
		return Seed{}, err
	}
	sd.fillDefaults()
	return sd, nil
}

// DecodeSeed only decodes; the doctor inspects seeds that would fail validation.
func DecodeSeed(b []byte, ext string) (Seed, error) {
	var sd Seed
	switch seedFormat(ext) {
	case "yaml":
		if err := yaml.Unmarshal(b, &sd); err != nil {
			return Seed{}, fmt.Errorf("decode yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(b, &sd); err != nil {
			return Seed{}, fmt.Errorf("decode toml: %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sd); err != nil {
			return Seed{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return Seed{}, fmt.Errorf("unsupported seed format: %q", ext)
	}
	return sd, nil
}

// EncodeSeed is the inverse of DecodeSeed.
func EncodeSeed(sd Seed, ext string) ([]byte, error) {
	switch seedFormat(ext) {
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(sd); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "toml":
		b, err := toml.Marshal(sd)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return b, nil
	case "json":
		b, err := json.MarshalIndent(sd, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(b, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported seed format: %q", ext)
}

// WriteSeedFile writes sd in the format implied by path's extension. An existing
// file is only replaced when overwrite is set.
func WriteSeedFile(path string, sd Seed, overwrite bool) error {
	b, err := EncodeSeed(sd, filepath.Ext(path))
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to replace it)", path)
		}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, ".seed-*.tmp", path, b, 0o644)
}

func seedFormat(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	case "json", "":
		return "json"
	}
	return ""
}

// Validate checks id uniqueness. Seeds are user input, so this is the one place ids
// are checked; references to unknown spaces/parents are allowed, as for CreatePage.
func (sd Seed) Validate() error {
	spaceIDs := map[string]bool{}
	for i, sp := range sd.Spaces {
		id := strings.TrimSpace(sp.ID)
		if id == "" {
			return fmt.Errorf("space #%d: missing id", i+1)
		}
		if spaceIDs[id] {
			return fmt.Errorf("duplicate space id: %s", id)
		}
		spaceIDs[id] = true
	}
	pageIDs := map[string]bool{}
	for i, p := range sd.Pages {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("page #%d: missing id", i+1)
		}
		if pageIDs[id] {
			return fmt.Errorf("duplicate page id: %s", id)
		}
		pageIDs[id] = true
		if p.ParentID != nil && *p.ParentID == id {
			return fmt.Errorf("page %s: parent is itself", id)
		}
	}
	return nil
}

func (sd *Seed) fillDefaults() {
	for i := range sd.Pages {
		p := &sd.Pages[i]
		if p.Emoji == "" {
			p.Emoji = DefaultPageEmoji
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		if p.ParentID != nil && strings.TrimSpace(*p.ParentID) == "" {
			p.ParentID = nil
		}
	}
	for i := range sd.Spaces {
		sp := &sd.Spaces[i]
		if sp.UpdatedAt.IsZero() {
			sp.UpdatedAt = sp.CreatedAt
		}
	}
}
