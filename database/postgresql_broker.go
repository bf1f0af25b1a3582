// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/vulncorrelator/monitoring"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type postgresMessage struct {
	ID        string         `json:"id"`
	Channel   Channel        `json:"topic"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
	SenderID  string         `json:"senderId"`
}

type listener struct {
	conn        *pgxpool.Conn
	subscribers []chan map[string]any
}

// PostgreSQLBroker fans LISTEN/NOTIFY messages out to in-process subscribers.
// Every replica runs one, which keeps per process caches in sync.
type PostgreSQLBroker struct {
	pool *pgxpool.Pool
	id   string

	mu        sync.RWMutex
	listeners map[Channel]*listener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	receiveOwnMessages atomic.Bool
}

func NewPostgreSQLBroker(pool *pgxpool.Pool) *PostgreSQLBroker {
	ctx, cancel := context.WithCancel(context.Background())
	return &PostgreSQLBroker{
		pool:      pool,
		id:        uuid.NewString(),
		listeners: make(map[Channel]*listener),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (b *PostgreSQLBroker) SetReceiveOwnMessages(receive bool) {
	b.receiveOwnMessages.Store(receive)
}

func (b *PostgreSQLBroker) Publish(ctx context.Context, message Message) error {
	msg := postgresMessage{
		ID:        uuid.NewString(),
		Channel:   message.GetChannel(),
		Payload:   message.GetPayload(),
		Timestamp: time.Now(),
		SenderID:  b.id,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "could not marshal message")
	}
	if _, err := b.pool.Exec(ctx, "SELECT pg_notify($1, $2)", string(msg.Channel), string(body)); err != nil {
		return errors.Wrap(err, "could not send notification")
	}
	slog.Debug("message published", "topic", msg.Channel, "messageID", msg.ID)
	return nil
}

func (b *PostgreSQLBroker) Subscribe(topic Channel) (<-chan map[string]any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan map[string]any, 100)
	if l, ok := b.listeners[topic]; ok {
		l.subscribers = append(l.subscribers, ch)
		return ch, nil
	}

	ctx, cancel := context.WithTimeout(b.ctx, 30*time.Second)
	defer cancel()
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not acquire listening connection")
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pq.QuoteIdentifier(string(topic))); err != nil {
		conn.Release()
		return nil, errors.Wrapf(err, "could not listen on %s", topic)
	}

	b.listeners[topic] = &listener{conn: conn, subscribers: []chan map[string]any{ch}}
	b.wg.Go(func() {
		b.receive(topic, conn)
	})
	return ch, nil
}

func (b *PostgreSQLBroker) receive(topic Channel, conn *pgxpool.Conn) {
	defer conn.Release()
	for {
		notification, err := conn.Conn().WaitForNotification(b.ctx)
		if err != nil {
			if b.ctx.Err() == nil {
				monitoring.Alert("stopped listening for notifications", err)
			}
			return
		}
		var msg postgresMessage
		if err := json.Unmarshal([]byte(notification.Payload), &msg); err != nil {
			slog.Warn("could not unmarshal notification", "topic", topic, "err", err)
			continue
		}
		if msg.SenderID == b.id && !b.receiveOwnMessages.Load() {
			continue
		}

		b.mu.RLock()
		subscribers := b.listeners[topic].subscribers
		b.mu.RUnlock()
		for _, s := range subscribers {
			select {
			case s <- msg.Payload:
			default:
				slog.Warn("subscriber channel full, dropping message", "topic", topic, "messageID", msg.ID)
			}
		}
	}
}

// Close stops all listeners and waits for them to release their connections.
func (b *PostgreSQLBroker) Close() {
	b.cancel()
	b.wg.Wait()
}
