// Package codec provides the Connect codec used by the planner API. Messages
// are plain Go structs, so the codec marshals them with go-json instead of
// protojson.
package codec

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"
)

// Name matches Connect's built-in JSON codec so that "application/json" and
// "application/connect+json" requests are routed to this codec.
const Name = "json"

type JSON struct{}

var _ connect.Codec = JSON{}

func (JSON) Name() string { return Name }

func (JSON) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSON) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", msg, err)
	}
	return nil
}

// IsBinary reports false: the payload is text and safe for GET query encoding.
func (JSON) IsBinary() bool { return false }
