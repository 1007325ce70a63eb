package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AssetInfo is the state snapshot of one asset as served by /assets.
type AssetInfo struct {
	Key      string   `json:"key,omitempty"`
	Type     string   `json:"type"`
	Name     string   `json:"name,omitempty"`
	Status   int      `json:"status"`
	Load     *float64 `json:"load,omitempty"`
	Children AssetMap `json:"children,omitempty"`
}

// IsOn reports status == 1. Any other value counts as off.
func (a AssetInfo) IsOn() bool { return a.Status == 1 }

type AssetEntry struct {
	Key  string
	Info AssetInfo
}

// AssetMap is a JSON object keyed by asset key that keeps document order.
type AssetMap []AssetEntry

func (m AssetMap) Get(key string) (AssetInfo, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Info, true
		}
	}
	return AssetInfo{}, false
}

func (m AssetMap) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

func (m AssetMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Info)
		if err != nil {
			return nil, fmt.Errorf("asset %s: %w", e.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *AssetMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("asset map: expected object, got %v", tok)
	}
	out := AssetMap{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("asset map: unexpected key %v", tok)
		}
		var info AssetInfo
		if err := dec.Decode(&info); err != nil {
			return fmt.Errorf("asset %s: %w", key, err)
		}
		out = append(out, AssetEntry{Key: key, Info: info})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// PowerRequest sets an explicit status on /assets/{key}/power. Graceful
// powers off through the asset's shutdown delay.
type PowerRequest struct {
	Status   int  `json:"status"`
	Graceful bool `json:"graceful,omitempty"`
}

// LoadRequest overrides the stored load on /assets/{key}/load.
type LoadRequest struct {
	Load *float64 `json:"load"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
