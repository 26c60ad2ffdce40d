// Package authority sends placement and deletion requests to a build
// server over TCP. The adapter is fire and forget: the frame path never
// blocks on the server's answer. Conflict handling, ownership checks
// and persistence all stay on the server side; rejections only show up
// in the log.
package authority

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/buildmode/internal/authority/packets"
	"github.com/Faultbox/buildmode/internal/buildmode"
	"github.com/Faultbox/buildmode/internal/logger"
	"github.com/Faultbox/buildmode/internal/placement"
)

// Client is the wire adapter to a build server. Safe for use from the
// frame goroutine while the ack reader runs in the background.
type Client struct {
	mu        sync.Mutex
	conn      net.Conn
	connected bool
}

// New creates a disconnected client.
func New() *Client {
	return &Client{}
}

// Connect dials the build server and starts the ack reader.
func (c *Client) Connect(addr string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return fmt.Errorf("already connected")
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}

	c.conn = conn
	c.connected = true
	go c.readAcks(conn)

	logger.Info("connected to build server", zap.String("addr", addr))
	return nil
}

// Close shuts the connection down.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

// Connected returns connection status.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// RequestPlace sends a placement request. Never blocks the frame: a
// dead connection drops the request with a log entry.
func (c *Client) RequestPlace(catalogID string, pose placement.Pose) {
	req := &packets.PlaceRequest{
		PacketID:  packets.CB_PLACE_REQ,
		RequestID: uuid.New(),
		X:         pose.Position.X,
		Y:         pose.Position.Y,
		Z:         pose.Position.Z,
		Yaw:       pose.Yaw,
	}
	req.SetCatalogID(catalogID)
	c.send(req.Encode())
}

// RequestDelete sends a deletion request for an owned object.
func (c *Client) RequestDelete(ref buildmode.Ref) {
	req := &packets.DeleteRequest{
		PacketID:  packets.CB_DELETE_REQ,
		RequestID: uuid.New(),
		Ref:       uint32(ref),
	}
	c.send(req.Encode())
}

func (c *Client) send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		logger.Warn("request dropped, no build server connection")
		return
	}
	if _, err := c.conn.Write(data); err != nil {
		logger.Error("build server send failed", zap.Error(err))
		c.conn.Close()
		c.conn = nil
		c.connected = false
	}
}

// readAcks drains server acknowledgements until the connection dies.
// Rejections are logged; the tool itself never reacts to them.
func (c *Client) readAcks(conn net.Conn) {
	buf := make([]byte, packets.AckSize)
	for {
		if _, err := io.ReadFull(conn, buf); err != nil {
			c.dropConn(conn, err)
			return
		}
		ack := packets.DecodeAck(buf)
		if ack.PacketID != packets.BC_ACK {
			c.dropConn(conn, fmt.Errorf("unexpected packet 0x%04X", ack.PacketID))
			return
		}
		if ack.Status != packets.AckOK {
			logger.Warn("build server rejected request",
				zap.String("request", ack.RequestID.String()),
				zap.Uint8("status", ack.Status))
		}
	}
}

func (c *Client) dropConn(conn net.Conn, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Only tear down if this reader's connection is still the live one.
	if c.conn != conn {
		return
	}
	if err != io.EOF {
		logger.Error("build server connection lost", zap.Error(err))
	} else {
		logger.Info("build server closed the connection")
	}
	c.conn.Close()
	c.conn = nil
	c.connected = false
}
