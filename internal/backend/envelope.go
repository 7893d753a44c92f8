package backend

import "context"

// Envelope is the backend's success wrapper around a single record.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Count   *int `json:"count,omitempty"`
}

// ListEnvelope is the paginated success wrapper.
type ListEnvelope[T any] struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    []T  `json:"data"`
}

// FailureEnvelope is the body of a rejected call.
type FailureEnvelope struct {
	Success bool    `json:"success"`
	Error   *string `json:"error,omitempty"`
	Msg     *string `json:"msg,omitempty"`
}

// Fetch performs a call and decodes the payload into a fresh T.
func Fetch[T any](ctx context.Context, c *Client, path string, opts Options) (T, error) {
	var out T
	err := c.Do(ctx, path, opts, &out)
	return out, err
}
