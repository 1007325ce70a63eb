package ui

import (
	"context"
	"sync"

	"asset-dashboard/backend/app/repo"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// StateUpdatedMsg is delivered for every message on the state-upd channel.
type StateUpdatedMsg struct {
	StateKey string
}

// Session bundles the API client with the optional Redis subscription
// that pushes state changes into the program.
type Session struct {
	Client  *Client
	Redis   *redis.Client
	Log     zerolog.Logger
	MsgChan chan tea.Msg

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

func NewSession(client *Client, rdb *redis.Client, log zerolog.Logger) *Session {
	return &Session{
		Client:  client,
		Redis:   rdb,
		Log:     log,
		MsgChan: make(chan tea.Msg, 16),
	}
}

// Subscribed reports whether live updates are flowing into MsgChan.
func (s *Session) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Subscribe starts forwarding state-upd messages. Without Redis it does nothing.
func (s *Session) Subscribe(ctx context.Context) error {
	if s.Redis == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	pubsub := s.Redis.Subscribe(ctx, repo.StateChannel)
	// wait for the subscription confirmation so a bad address surfaces here
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return err
	}
	s.cancel = cancel
	s.running = true
	go s.receiveLoop(ctx, pubsub)
	return nil
}

func (s *Session) receiveLoop(ctx context.Context, pubsub *redis.PubSub) {
	defer func() {
		_ = pubsub.Close()
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			s.Log.Debug().Str("key", m.Payload).Msg("state update")
			select {
			case s.MsgChan <- StateUpdatedMsg{StateKey: m.Payload}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// WaitForMsg is a tea.Cmd that waits for the next message from the channel
func (s *Session) WaitForMsg() tea.Msg {
	return <-s.MsgChan
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.running = false
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}
