package nostr

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"nostrsky/internal/constants"
	apperrors "nostrsky/internal/errors"
	"nostrsky/internal/models"
	"nostrsky/internal/privacy"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/sirupsen/logrus"
)

// Client wraps a single relay connection: one live subscription for the
// monitored author's notes, plus ad-hoc kind 0 metadata queries for
// mention resolution. The relay handle is swapped by the reconnect loop
// while metadata queries read it from the pipeline goroutine, so access
// goes through the mutex.
type Client struct {
	relayURL string
	logger   *logrus.Logger

	mu    sync.Mutex
	relay *gonostr.Relay
}

func NewClient(relayURL string, logger *logrus.Logger) *Client {
	return &Client{
		relayURL: relayURL,
		logger:   logger,
	}
}

// Connect dials the relay. Must be called before Stream or
// QueryLatestMetadata.
func (c *Client) Connect(ctx context.Context) error {
	relay, err := gonostr.RelayConnect(ctx, c.relayURL)
	if err != nil {
		return apperrors.NewRelayError("connect", err).WithContext("relay", c.relayURL)
	}
	c.setRelay(relay)
	c.logger.WithField("relay", c.relayURL).Info("Connected to relay")
	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	relay := c.relay
	c.relay = nil
	c.mu.Unlock()

	if relay == nil {
		return nil
	}
	return relay.Close()
}

// setRelay swaps in a new relay handle, closing the previous connection so
// reconnects do not leak.
func (c *Client) setRelay(relay *gonostr.Relay) {
	c.mu.Lock()
	old := c.relay
	c.relay = relay
	c.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			c.logger.WithError(err).Debug("Failed to close previous relay connection")
		}
	}
}

func (c *Client) currentRelay() *gonostr.Relay {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.relay
}

// Stream subscribes to kind 1 notes by authorHex created at or after since
// and delivers them on the returned channel. The subscription is re-created
// after transient relay failures; the channel closes when ctx is cancelled.
func (c *Client) Stream(ctx context.Context, authorHex string, since time.Time) <-chan *gonostr.Event {
	out := make(chan *gonostr.Event, constants.SubscriptionEventBufferSize)

	go func() {
		defer close(out)
		for {
			if err := c.subscribeOnce(ctx, authorHex, since, out); err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.WithError(err).Error("Relay subscription error, reconnecting")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(constants.DefaultRelayReconnectDelaySec * time.Second):
			}

			if err := c.Connect(ctx); err != nil {
				c.logger.WithError(err).Warn("Relay reconnect failed")
			}
		}
	}()

	return out
}

func (c *Client) subscribeOnce(ctx context.Context, authorHex string, since time.Time, out chan<- *gonostr.Event) error {
	relay := c.currentRelay()
	if relay == nil {
		return fmt.Errorf("relay not connected")
	}

	ts := gonostr.Timestamp(since.Unix())
	filter := gonostr.Filter{
		Kinds:   []int{gonostr.KindTextNote},
		Authors: []string{authorHex},
		Since:   &ts,
	}

	sub, err := relay.Subscribe(ctx, gonostr.Filters{filter})
	if err != nil {
		return apperrors.NewRelayError("subscribe", err)
	}
	defer sub.Unsub()

	c.logger.WithFields(logrus.Fields{
		"author": privacy.MaskPubKey(EncodeNpub(authorHex)),
		"since":  since.UTC().Format(time.RFC3339),
	}).Info("Subscribed to author notes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events:
			if !ok {
				return fmt.Errorf("subscription closed by relay")
			}
			if ev == nil {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// QueryLatestMetadata fetches the most recent kind 0 profile event for
// pubkeyHex and parses its JSON content. Returns nil when the relay has no
// record; malformed metadata is an error.
func (c *Client) QueryLatestMetadata(ctx context.Context, pubkeyHex string, timeout time.Duration) (*models.ProfileMetadata, error) {
	relay := c.currentRelay()
	if relay == nil {
		return nil, fmt.Errorf("relay not connected")
	}

	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	filter := gonostr.Filter{
		Kinds:   []int{gonostr.KindProfileMetadata},
		Authors: []string{pubkeyHex},
		Limit:   1,
	}

	events, err := relay.QuerySync(queryCtx, filter)
	if err != nil {
		return nil, apperrors.NewRelayError("metadata query", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	return ParseProfileMetadata(events[0].Content)
}

// ParseProfileMetadata decodes the JSON body of a kind 0 event.
func ParseProfileMetadata(content string) (*models.ProfileMetadata, error) {
	var meta models.ProfileMetadata
	if err := json.Unmarshal([]byte(content), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse profile metadata: %w", err)
	}
	return &meta, nil
}
