package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelAuthFeed realizes AuthFeed over an in-process pub/sub channel.
// Producers call Publish after authenticating or revoking a session; every
// active subscriber sees every change.
type ChannelAuthFeed struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewChannelAuthFeed(pubSub *gochannel.GoChannel, topic string) *ChannelAuthFeed {
	return &ChannelAuthFeed{pubSub: pubSub, topic: topic}
}

func (f *ChannelAuthFeed) Publish(change AuthChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return f.pubSub.Publish(f.topic, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe delivers each subsequent change to fn. The returned func cancels
// the subscription; once it returns, fn is never invoked again.
func (f *ChannelAuthFeed) Subscribe(fn func(AuthChange)) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(context.Background())
	messages, err := f.pubSub.Subscribe(ctx, f.topic)
	if err != nil {
		cancel()
		return func() {}
	}

	var mu sync.Mutex
	detached := false

	go func() {
		for msg := range messages {
			var change AuthChange
			if err := json.Unmarshal(msg.Payload, &change); err != nil {
				msg.Ack()
				continue
			}
			msg.Ack()
			mu.Lock()
			if !detached {
				fn(change)
			}
			mu.Unlock()
		}
	}()

	return func() {
		mu.Lock()
		detached = true
		mu.Unlock()
		cancel()
	}
}
