// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statusapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/msgs"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/router"
	"github.com/vices1967-beep/GanadoChain-sub000/internal/txmgr"
	"github.com/vices1967-beep/GanadoChain-sub000/pkg/log"
)

// per-connection queue depth; a client this far behind is disconnected
const wsSendBuffer = 64

type wsConnection struct {
	ctx       context.Context
	cancelCtx context.CancelFunc
	server    *statusServer
	id        string
	conn      *websocket.Conn
	closeMux  sync.Mutex
	closed    bool
	send      chan []byte
	closing   chan struct{}
}

func (s *statusServer) wsHandler(res http.ResponseWriter, req *http.Request) {
	if s.wsRequireAuth && !router.Authenticated(req.Context()) {
		s.writeJSON(req.Context(), res, http.StatusUnauthorized, &txmgr.Result{Error: http.StatusText(http.StatusUnauthorized)})
		return
	}
	conn, err := s.wsUpgrader.Upgrade(res, req, nil)
	if err != nil {
		log.L(req.Context()).Error(i18n.WrapError(req.Context(), err, msgs.MsgConfigWebSocketUpgrade))
		return
	}
	s.newWSConnection(conn)
}

func (s *statusServer) newWSConnection(conn *websocket.Conn) {
	s.wsMux.Lock()
	defer s.wsMux.Unlock()

	c := &wsConnection{
		id:      uuid.NewString()[:8],
		server:  s,
		conn:    conn,
		send:    make(chan []byte, wsSendBuffer),
		closing: make(chan struct{}),
	}
	c.ctx, c.cancelCtx = context.WithCancel(log.WithLogField(s.bgCtx, "wsconn", c.id))

	s.wsConnections[c.id] = c
	go c.listen()
	go c.sender()
}

func (s *statusServer) wsClosed(id string) {
	s.wsMux.Lock()
	defer s.wsMux.Unlock()

	delete(s.wsConnections, id)
}

func (s *statusServer) connectionList() []*wsConnection {
	s.wsMux.Lock()
	defer s.wsMux.Unlock()

	conns := make([]*wsConnection, 0, len(s.wsConnections))
	for _, c := range s.wsConnections {
		conns = append(conns, c)
	}
	return conns
}

func (s *statusServer) Connections() int {
	s.wsMux.Lock()
	defer s.wsMux.Unlock()
	return len(s.wsConnections)
}

// broadcast is registered as a transaction manager listener, so runs on a confirmer worker
func (s *statusServer) broadcast(ctx context.Context, n *txmgr.TxNotification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.L(ctx).Errorf("Failed to serialize notification for %s: %s", n.Hash, err)
		return
	}
	for _, c := range s.connectionList() {
		c.queue(payload)
	}
}

func (c *wsConnection) queue(payload []byte) {
	select {
	case c.send <- payload:
	case <-c.closing:
	default:
		log.L(c.ctx).Warnf("Client not keeping up with notifications - closing connection")
		go c.close()
	}
}

func (c *wsConnection) close() {
	c.closeMux.Lock()
	if !c.closed {
		c.closed = true
		_ = c.conn.Close()
		close(c.closing)
		c.cancelCtx()
	}
	c.closeMux.Unlock()

	c.server.wsClosed(c.id)
	log.L(c.ctx).Infof("WS disconnected")
}

func (c *wsConnection) sender() {
	defer c.close()
	for {
		select {
		case payload := <-c.send:
			log.L(c.ctx).Tracef("Sending: %s", payload)
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.L(c.ctx).Errorf("Send failed - closing connection: %s", err)
				return
			}
		case <-c.closing:
			return
		}
	}
}

// listen only drains the socket; the stream is server to client
func (c *wsConnection) listen() {
	defer c.close()
	log.L(c.ctx).Infof("WS connected")
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			log.L(c.ctx).Debugf("Read ended: %s", err)
			return
		}
	}
}
