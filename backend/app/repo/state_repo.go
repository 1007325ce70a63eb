package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateChannel carries the status key of every asset whose state changed.
const StateChannel = "state-upd"

// StateKey is the Redis key holding the on/off status of an asset.
func StateKey(key, assetType string) string { return key + "-" + assetType }

func loadKey(rkey string) string { return rkey + ":load" }

// StateRepository keeps live asset state in Redis.
type StateRepository struct{ rdb *redis.Client }

func NewStateRepository(rdb *redis.Client) *StateRepository { return &StateRepository{rdb: rdb} }

// Statuses reads the status of each key; keys without a value are left out.
func (r *StateRepository) Statuses(ctx context.Context, rkeys []string) (map[string]int, error) {
	out := make(map[string]int, len(rkeys))
	if len(rkeys) == 0 {
		return out, nil
	}
	vals, err := r.rdb.MGet(ctx, rkeys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		out[rkeys[i]] = n
	}
	return out, nil
}

func (r *StateRepository) SetStatus(ctx context.Context, rkey string, on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return r.rdb.Set(ctx, rkey, v, 0).Err()
}

// InitStatus writes the status only when none is stored yet.
func (r *StateRepository) InitStatus(ctx context.Context, rkey string, on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return r.rdb.SetNX(ctx, rkey, v, 0).Err()
}

// Loads reads the load of each key; keys without a value are left out.
func (r *StateRepository) Loads(ctx context.Context, rkeys []string) (map[string]float64, error) {
	out := make(map[string]float64, len(rkeys))
	if len(rkeys) == 0 {
		return out, nil
	}
	lkeys := make([]string, len(rkeys))
	for i, k := range rkeys {
		lkeys[i] = loadKey(k)
	}
	vals, err := r.rdb.MGet(ctx, lkeys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		out[rkeys[i]] = f
	}
	return out, nil
}

func (r *StateRepository) SetLoad(ctx context.Context, rkey string, load float64) error {
	return r.rdb.Set(ctx, loadKey(rkey), strconv.FormatFloat(load, 'f', -1, 64), 0).Err()
}

func (r *StateRepository) ResetBootTime(ctx context.Context, key string, at time.Time) error {
	return r.rdb.Set(ctx, key+":start_time", at.Unix(), 0).Err()
}

func (r *StateRepository) Publish(ctx context.Context, rkey string) error {
	return r.rdb.Publish(ctx, StateChannel, rkey).Err()
}

// Ping is used at startup to fail fast on a bad Redis address.
func (r *StateRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
