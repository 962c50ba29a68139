package assets

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/pkg/math"
)

//go:embed manifest.yaml
var defaultManifest []byte

// ModelSpec describes one model's local axis-aligned bounds.
type ModelSpec struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// Bounds returns the sphere circumscribing the box.
func (s ModelSpec) Bounds() entity.Sphere {
	lo := math.Vec3{X: s.Min[0], Y: s.Min[1], Z: s.Min[2]}
	hi := math.Vec3{X: s.Max[0], Y: s.Max[1], Z: s.Max[2]}
	return entity.Sphere{
		Center: lo.Lerp(hi, 0.5),
		Radius: hi.Sub(lo).Length() / 2,
	}
}

// Manifest maps model keys to their specs.
type Manifest struct {
	Models map[string]ModelSpec `yaml:"models"`
}

// DefaultManifest returns the manifest compiled into the binary.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(defaultManifest)
}

// LoadManifest reads a manifest file. An empty path selects the default.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return DefaultManifest()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	for key, spec := range m.Models {
		for axis := 0; axis < 3; axis++ {
			if spec.Min[axis] > spec.Max[axis] {
				return nil, fmt.Errorf("model %q: min exceeds max on axis %d", key, axis)
			}
		}
	}
	return &m, nil
}
