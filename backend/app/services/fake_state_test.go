package services

import (
	"context"
	"sync"
	"time"
)

type memState struct {
	mu        sync.Mutex
	status    map[string]int
	load      map[string]float64
	boot      map[string]time.Time
	published []string
}

func newMemState() *memState {
	return &memState{status: map[string]int{}, load: map[string]float64{}, boot: map[string]time.Time{}}
}

func (m *memState) Statuses(_ context.Context, rkeys []string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, k := range rkeys {
		if v, ok := m.status[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memState) SetStatus(_ context.Context, rkey string, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status[rkey] = 0
	if on {
		m.status[rkey] = 1
	}
	return nil
}

func (m *memState) InitStatus(ctx context.Context, rkey string, on bool) error {
	m.mu.Lock()
	_, ok := m.status[rkey]
	m.mu.Unlock()
	if ok {
		return nil
	}
	return m.SetStatus(ctx, rkey, on)
}

func (m *memState) Loads(_ context.Context, rkeys []string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]float64{}
	for _, k := range rkeys {
		if v, ok := m.load[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memState) SetLoad(_ context.Context, rkey string, load float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.load[rkey] = load
	return nil
}

func (m *memState) ResetBootTime(_ context.Context, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boot[key] = at
	return nil
}

func (m *memState) Publish(_ context.Context, rkey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, rkey)
	return nil
}
