package ports

import "context"

// MessageConsumer - фоновый потребитель сообщений (live-инжест).
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
