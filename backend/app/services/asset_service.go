package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"asset-dashboard/backend/app/dto"
	"asset-dashboard/backend/app/models"
	"asset-dashboard/backend/app/repo"
	"asset-dashboard/backend/global"

	"gorm.io/gorm"
)

// StateStore is the live state backend, Redis in production.
type StateStore interface {
	Statuses(ctx context.Context, rkeys []string) (map[string]int, error)
	SetStatus(ctx context.Context, rkey string, on bool) error
	InitStatus(ctx context.Context, rkey string, on bool) error
	Loads(ctx context.Context, rkeys []string) (map[string]float64, error)
	SetLoad(ctx context.Context, rkey string, load float64) error
	ResetBootTime(ctx context.Context, key string, at time.Time) error
	Publish(ctx context.Context, rkey string) error
}

type AssetService struct {
	assets *repo.AssetRepository
	state  StateStore
	now    func() time.Time
}

func NewAssetService(assets *repo.AssetRepository, state StateStore) *AssetService {
	return &AssetService{assets: assets, state: state, now: time.Now}
}

func stateKey(a models.Asset) string { return repo.StateKey(a.Key, a.Type) }

// snapshot holds the live state of a set of assets read in one round trip.
type snapshot struct {
	statuses map[string]int
	loads    map[string]float64
}

func (s *AssetService) readState(ctx context.Context, assets []models.Asset) (snapshot, error) {
	rkeys := make([]string, len(assets))
	for i, a := range assets {
		rkeys[i] = stateKey(a)
	}
	statuses, err := s.state.Statuses(ctx, rkeys)
	if err != nil {
		return snapshot{}, fmt.Errorf("read statuses: %w", err)
	}
	loads, err := s.state.Loads(ctx, rkeys)
	if err != nil {
		return snapshot{}, fmt.Errorf("read loads: %w", err)
	}
	return snapshot{statuses: statuses, loads: loads}, nil
}

func (snap snapshot) info(a models.Asset) dto.AssetInfo {
	rk := stateKey(a)
	info := dto.AssetInfo{Key: a.Key, Type: a.Type, Name: a.Name, Status: snap.statuses[rk]}
	if l, ok := snap.loads[rk]; ok {
		info.Load = &l
	}
	return info
}

// SystemStatus returns every asset with its state. Unless flatten is set,
// components are nested under their enclosing asset instead of listed at the top.
func (s *AssetService) SystemStatus(ctx context.Context, flatten bool) (dto.AssetMap, error) {
	all, err := s.assets.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	snap, err := s.readState(ctx, all)
	if err != nil {
		return nil, err
	}

	out := dto.AssetMap{}
	if flatten {
		for _, a := range all {
			out = append(out, dto.AssetEntry{Key: a.Key, Info: snap.info(a)})
		}
		return out, nil
	}

	known := make(map[string]bool, len(all))
	for _, a := range all {
		known[a.Key] = true
	}
	components := make(map[string][]models.Asset)
	for _, a := range all {
		if a.ComponentOf != nil && known[*a.ComponentOf] {
			components[*a.ComponentOf] = append(components[*a.ComponentOf], a)
		}
	}
	for _, a := range all {
		if a.ComponentOf != nil && known[*a.ComponentOf] {
			continue
		}
		out = append(out, dto.AssetEntry{Key: a.Key, Info: nest(a, components, snap, map[string]bool{})})
	}
	return out, nil
}

func nest(a models.Asset, components map[string][]models.Asset, snap snapshot, seen map[string]bool) dto.AssetInfo {
	info := snap.info(a)
	seen[a.Key] = true
	for _, c := range components[a.Key] {
		if seen[c.Key] {
			continue
		}
		info.Children = append(info.Children, dto.AssetEntry{Key: c.Key, Info: nest(c, components, snap, seen)})
	}
	return info
}

// AssetStatus returns one asset with its components nested.
func (s *AssetService) AssetStatus(ctx context.Context, key string) (dto.AssetInfo, error) {
	a, err := s.find(key)
	if err != nil {
		return dto.AssetInfo{}, err
	}
	all, err := s.assets.ListAll()
	if err != nil {
		return dto.AssetInfo{}, fmt.Errorf("list assets: %w", err)
	}
	components := make(map[string][]models.Asset)
	for _, c := range all {
		if c.ComponentOf != nil {
			components[*c.ComponentOf] = append(components[*c.ComponentOf], c)
		}
	}
	snap, err := s.readState(ctx, all)
	if err != nil {
		return dto.AssetInfo{}, err
	}
	return nest(*a, components, snap, map[string]bool{}), nil
}

func (s *AssetService) find(key string) (*models.Asset, error) {
	a, err := s.assets.FindByKey(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("find asset %s: %w", key, err)
	}
	return a, nil
}

func (s *AssetService) status(ctx context.Context, a models.Asset) (int, error) {
	rk := stateKey(a)
	st, err := s.state.Statuses(ctx, []string{rk})
	if err != nil {
		return 0, fmt.Errorf("read status %s: %w", rk, err)
	}
	return st[rk], nil
}

// parentsAvailable is false only when every parent has a stored "off" status.
// Parents without a stored status do not block power up.
func (s *AssetService) parentsAvailable(ctx context.Context, a models.Asset) (bool, error) {
	parentKeys, err := s.assets.ParentKeys(a.Key)
	if err != nil {
		return false, fmt.Errorf("parents of %s: %w", a.Key, err)
	}
	if len(parentKeys) == 0 {
		return true, nil
	}
	rkeys := make([]string, 0, len(parentKeys))
	for _, pk := range parentKeys {
		p, err := s.assets.FindByKey(pk)
		if err != nil {
			// dangling link, treat as missing state
			return true, nil
		}
		rkeys = append(rkeys, stateKey(*p))
	}
	st, err := s.state.Statuses(ctx, rkeys)
	if err != nil {
		return false, fmt.Errorf("read parent statuses: %w", err)
	}
	down := 0
	for _, rk := range rkeys {
		if v, ok := st[rk]; ok && v == 0 {
			down++
		}
	}
	return down < len(rkeys), nil
}

// PowerUp turns the asset on after its OnDelay, provided a parent is powered.
func (s *AssetService) PowerUp(ctx context.Context, key string) (int, error) {
	a, err := s.find(key)
	if err != nil {
		return 0, err
	}
	cur, err := s.status(ctx, *a)
	if err != nil {
		return 0, err
	}
	if cur == 1 {
		return cur, nil
	}
	ok, err := s.parentsAvailable(ctx, *a)
	if err != nil {
		return cur, err
	}
	if !ok {
		global.Logger.Warn().Str("asset", a.Key).Msg("power up refused: parents off")
		return cur, fmt.Errorf("%w: %s", ErrParentsOff, a.Key)
	}
	if err := sleepCtx(ctx, time.Duration(a.OnDelay)*time.Millisecond); err != nil {
		return cur, err
	}
	if err := s.state.ResetBootTime(ctx, a.Key, s.now()); err != nil {
		return cur, fmt.Errorf("reset boot time: %w", err)
	}
	if err := s.setState(ctx, *a, true); err != nil {
		return cur, err
	}
	global.Logger.Info().Str("asset", a.Key).Str("type", a.Type).Msg("powered up")
	return 1, nil
}

// PowerOff is an abrupt power loss.
func (s *AssetService) PowerOff(ctx context.Context, key string) (int, error) {
	a, err := s.find(key)
	if err != nil {
		return 0, err
	}
	return s.off(ctx, *a)
}

// ShutDown is a graceful power off honouring OffDelay.
func (s *AssetService) ShutDown(ctx context.Context, key string) (int, error) {
	a, err := s.find(key)
	if err != nil {
		return 0, err
	}
	if err := sleepCtx(ctx, time.Duration(a.OffDelay)*time.Millisecond); err != nil {
		return 0, err
	}
	return s.off(ctx, *a)
}

func (s *AssetService) off(ctx context.Context, a models.Asset) (int, error) {
	cur, err := s.status(ctx, a)
	if err != nil {
		return 0, err
	}
	if cur == 0 {
		return 0, nil
	}
	if err := s.setState(ctx, a, false); err != nil {
		return cur, err
	}
	global.Logger.Info().Str("asset", a.Key).Str("type", a.Type).Msg("powered off")
	return 0, nil
}

func (s *AssetService) setState(ctx context.Context, a models.Asset, on bool) error {
	rk := stateKey(a)
	if err := s.state.SetStatus(ctx, rk, on); err != nil {
		return fmt.Errorf("set status %s: %w", rk, err)
	}
	if err := s.RecalculateLoads(ctx); err != nil {
		return err
	}
	if err := s.state.Publish(ctx, rk); err != nil {
		return fmt.Errorf("publish %s: %w", rk, err)
	}
	return nil
}

// Toggle flips the asset: on assets lose power, anything else is powered up.
func (s *AssetService) Toggle(ctx context.Context, key string) (dto.AssetInfo, error) {
	a, err := s.find(key)
	if err != nil {
		return dto.AssetInfo{}, err
	}
	cur, err := s.status(ctx, *a)
	if err != nil {
		return dto.AssetInfo{}, err
	}
	if cur == 1 {
		_, err = s.off(ctx, *a)
	} else {
		_, err = s.PowerUp(ctx, key)
	}
	if err != nil {
		return dto.AssetInfo{}, err
	}
	return s.AssetStatus(ctx, key)
}

// SetStatus drives the asset to an explicit status; 1 powers up, anything else powers off.
func (s *AssetService) SetStatus(ctx context.Context, key string, status int) (dto.AssetInfo, error) {
	var err error
	if status == 1 {
		_, err = s.PowerUp(ctx, key)
	} else {
		_, err = s.PowerOff(ctx, key)
	}
	if err != nil {
		return dto.AssetInfo{}, err
	}
	return s.AssetStatus(ctx, key)
}

// UpdateLoad stores a measured load until the next recalculation replaces it.
func (s *AssetService) UpdateLoad(ctx context.Context, key string, amps float64) error {
	if amps < 0 || math.IsNaN(amps) || math.IsInf(amps, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidLoad, amps)
	}
	a, err := s.find(key)
	if err != nil {
		return err
	}
	rk := stateKey(*a)
	if err := s.state.SetLoad(ctx, rk, amps); err != nil {
		return fmt.Errorf("set load %s: %w", rk, err)
	}
	if err := s.state.Publish(ctx, rk); err != nil {
		return fmt.Errorf("publish %s: %w", rk, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
