package utils

import (
	"context"
	"time"
)

// NotifyChange publishes a change tick on a feed channel. Subscribers reload
// the full snapshot on each tick, so the payload carries no data.
func NotifyChange(channel string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Publish(ctx, channel, "1").Err(); err != nil && Sugar != nil {
		Sugar.Warnf("feed notify failed channel=%s err=%v", channel, err)
	}
}

// SubscribeChanges subscribes to a feed channel and converts incoming
// messages into bare ticks. The returned stop function releases the
// underlying pubsub connection; the tick channel closes afterwards.
func SubscribeChanges(ctx context.Context, channel string) (<-chan struct{}, func()) {
	rc := GetRedis()
	pubsub := rc.Subscribe(ctx, channel)

	ticks := make(chan struct{}, 1)
	go func() {
		defer close(ticks)
		for range pubsub.Channel() {
			select {
			case ticks <- struct{}{}:
			default: // a pending tick already forces a reload
			}
		}
	}()

	stop := func() { _ = pubsub.Close() }
	return ticks, stop
}
