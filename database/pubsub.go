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
	"log/slog"
	"sync"
)

type Channel string

// SbomChanged carries {"sbomId": "..."} whenever an sbom is stored or deleted.
const SbomChanged Channel = "sbom_changed"

type Message interface {
	GetChannel() Channel
	GetPayload() map[string]any
}

type Broker interface {
	Publish(ctx context.Context, message Message) error
	Subscribe(topic Channel) (<-chan map[string]any, error)
}

type SimpleMessage struct {
	Channel Channel
	Payload map[string]any
}

func (m SimpleMessage) GetChannel() Channel {
	return m.Channel
}

func (m SimpleMessage) GetPayload() map[string]any {
	return m.Payload
}

func NewSimpleMessage(channel Channel, payload map[string]any) *SimpleMessage {
	return &SimpleMessage{Channel: channel, Payload: payload}
}

// LocalBroker delivers messages inside one process. It backs tests and single
// instance deployments.
type LocalBroker struct {
	mu          sync.RWMutex
	subscribers map[Channel][]chan map[string]any
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subscribers: make(map[Channel][]chan map[string]any)}
}

func (b *LocalBroker) Publish(_ context.Context, message Message) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.subscribers[message.GetChannel()] {
		select {
		case s <- message.GetPayload():
		default:
			slog.Warn("subscriber channel full, dropping message", "topic", message.GetChannel())
		}
	}
	return nil
}

func (b *LocalBroker) Subscribe(topic Channel) (<-chan map[string]any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan map[string]any, 100)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch, nil
}
