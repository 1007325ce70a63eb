package services

import (
	"context"
	"fmt"
	"os"

	"asset-dashboard/backend/app/models"
	"asset-dashboard/backend/global"

	"gopkg.in/yaml.v3"
)

// TopologyAsset is one entry of the topology seed file.
type TopologyAsset struct {
	Key              string          `yaml:"key"`
	Type             string          `yaml:"type"`
	Name             string          `yaml:"name"`
	OnDelay          int             `yaml:"on_delay"`
	OffDelay         int             `yaml:"off_delay"`
	PowerConsumption float64         `yaml:"power_consumption"`
	PowerSource      float64         `yaml:"power_source"`
	PoweredBy        []string        `yaml:"powered_by"`
	Components       []TopologyAsset `yaml:"components"`
}

type Topology struct {
	Assets []TopologyAsset `yaml:"assets"`
}

func ParseTopology(data []byte) (*Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}
	return &t, nil
}

// SeedTopologyFile loads a YAML topology and applies it with ApplyTopology.
func (s *AssetService) SeedTopologyFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read topology: %w", err)
	}
	t, err := ParseTopology(data)
	if err != nil {
		return err
	}
	return s.ApplyTopology(ctx, t)
}

// ApplyTopology upserts every asset and its power links. Assets without a
// stored status start powered on.
func (s *AssetService) ApplyTopology(ctx context.Context, t *Topology) error {
	count := 0
	var apply func(ta TopologyAsset, parent *string) error
	apply = func(ta TopologyAsset, parent *string) error {
		if ta.Key == "" || ta.Type == "" {
			return fmt.Errorf("topology asset needs key and type (key=%q type=%q)", ta.Key, ta.Type)
		}
		a := models.Asset{
			Key:              ta.Key,
			Type:             ta.Type,
			Name:             ta.Name,
			ComponentOf:      parent,
			OnDelay:          ta.OnDelay,
			OffDelay:         ta.OffDelay,
			PowerConsumption: ta.PowerConsumption,
			PowerSource:      ta.PowerSource,
		}
		if _, err := s.assets.Upsert(&a); err != nil {
			return fmt.Errorf("upsert %s: %w", ta.Key, err)
		}
		if err := s.assets.ReplaceLinks(ta.Key, ta.PoweredBy); err != nil {
			return fmt.Errorf("links of %s: %w", ta.Key, err)
		}
		if err := s.state.InitStatus(ctx, stateKey(a), true); err != nil {
			return fmt.Errorf("init status %s: %w", ta.Key, err)
		}
		count++
		key := ta.Key
		for _, c := range ta.Components {
			if err := apply(c, &key); err != nil {
				return err
			}
		}
		return nil
	}
	for _, ta := range t.Assets {
		if err := apply(ta, nil); err != nil {
			return err
		}
	}
	global.Logger.Info().Int("assets", count).Msg("topology applied")
	return s.RecalculateLoads(ctx)
}
