package source

import (
	"context"

	"github.com/wb-go/wbf/retry"
)

type sourcePublisher interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
}
