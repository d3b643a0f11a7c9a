package assistant

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyReply = errors.New("empty reply")

type Image struct {
	MimeType string
	Data     []byte
}

type Request struct {
	SystemContext string
	Prompt        string
	Image         *Image
}

// Fragment is one piece of a streamed reply. A fragment with Err set is the
// last one sent.
type Fragment struct {
	Text string
	Err  error
}

// Provider generates a reply as a stream of fragments. The channel is closed
// when the reply is complete or failed.
type Provider interface {
	Stream(ctx context.Context, req Request) (<-chan Fragment, error)
}

// Collect drains the stream into the full reply.
func Collect(ctx context.Context, fragments <-chan Fragment) (string, error) {
	var b strings.Builder
	for {
		select {
		case <-ctx.Done():
			return b.String(), ctx.Err()
		case f, ok := <-fragments:
			if !ok {
				if b.Len() == 0 {
					return "", ErrEmptyReply
				}
				return b.String(), nil
			}
			if f.Err != nil {
				return b.String(), f.Err
			}
			b.WriteString(f.Text)
		}
	}
}
