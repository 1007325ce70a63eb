package services

import (
	"context"
	"fmt"
	"time"

	"asset-dashboard/backend/app/models"
	"asset-dashboard/backend/global"
)

// amperage returns the draw of an asset type that consumes power itself.
func amperage(a models.Asset) float64 {
	if a.PowerSource <= 0 {
		return 0
	}
	return a.PowerConsumption / a.PowerSource
}

// aggregates reports whether the load of a type is the load of what it powers.
func aggregates(assetType string) bool {
	return assetType == "outlet" || assetType == "pdu"
}

type loadCalculator struct {
	svc      *AssetService
	statuses map[string]int
	memo     map[string]float64
	visiting map[string]bool
}

func (c *loadCalculator) load(a models.Asset) (float64, error) {
	if l, ok := c.memo[a.Key]; ok {
		return l, nil
	}
	if c.visiting[a.Key] {
		return 0, nil
	}
	if c.statuses[stateKey(a)] != 1 {
		c.memo[a.Key] = 0
		return 0, nil
	}
	switch {
	case a.Type == "staticasset" || a.Type == "server" || a.Type == "serverwithbmc":
		c.memo[a.Key] = amperage(a)
		return c.memo[a.Key], nil
	case !aggregates(a.Type):
		// ups, psu and the rest report no load of their own
		c.memo[a.Key] = 0
		return 0, nil
	}

	c.visiting[a.Key] = true
	defer delete(c.visiting, a.Key)

	powered, err := c.svc.assets.PoweredBy(a.Key)
	if err != nil {
		return 0, fmt.Errorf("assets powered by %s: %w", a.Key, err)
	}
	total := 0.0
	for _, p := range powered {
		l, err := c.load(p)
		if err != nil {
			return 0, err
		}
		// an asset fed by several parents splits its draw evenly between them
		parents, err := c.svc.assets.ParentKeys(p.Key)
		if err != nil {
			return 0, fmt.Errorf("parents of %s: %w", p.Key, err)
		}
		if len(parents) > 1 {
			l /= float64(len(parents))
		}
		total += l
	}
	c.memo[a.Key] = total
	return total, nil
}

// RecalculateLoads walks the power chain of every asset and stores its load in amps.
func (s *AssetService) RecalculateLoads(ctx context.Context) error {
	all, err := s.assets.ListAll()
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	snap, err := s.readState(ctx, all)
	if err != nil {
		return err
	}
	calc := &loadCalculator{svc: s, statuses: snap.statuses, memo: map[string]float64{}, visiting: map[string]bool{}}
	for _, a := range all {
		l, err := calc.load(a)
		if err != nil {
			return err
		}
		if err := s.state.SetLoad(ctx, stateKey(a), l); err != nil {
			return fmt.Errorf("set load %s: %w", a.Key, err)
		}
	}
	return nil
}

// RunLoadRefresher recalculates loads every interval so that status changes
// written to Redis by other tools show up in the stored loads. It returns nil
// once ctx is done.
func (s *AssetService) RunLoadRefresher(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := s.RecalculateLoads(ctx); err != nil && ctx.Err() == nil {
				global.Logger.Error().Err(err).Msg("load refresh failed")
			}
		}
	}
}
