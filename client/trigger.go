package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// TriggerRequest mirrors the target's HTTP enqueue body.
type TriggerRequest struct {
	Version     int      `json:"version"`
	Command     string   `json:"command,omitempty"`
	Args        []string `json:"args,omitempty"`
	ChannelName string   `json:"channel_name"`
}

// TriggerResponse carries the enqueue status the target returned.
type TriggerResponse struct {
	Status     int32  `json:"status"`
	StatusText string `json:"status_text"`
}

// Trigger asks the target's diagnostics endpoint to enqueue an attach
// request naming this client's channel. The transport for the command
// itself stays the channel; this call is only the out-of-band signal.
func Trigger(ctx context.Context, baseURL string, req TriggerRequest) (*TriggerResponse, error) {
	var out TriggerResponse
	resp, err := resty.New().R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post(baseURL + "/enqueue")
	if err != nil {
		return nil, fmt.Errorf("client: trigger: %w", err)
	}
	if resp.IsError() && out.StatusText == "" {
		return nil, fmt.Errorf("client: trigger rejected: %s", resp.Status())
	}
	return &out, nil
}
