// Package packets defines the build channel wire format.
package packets

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// Packet IDs for the build channel.
const (
	// Client -> Build Server
	CB_PLACE_REQ  uint16 = 0x0B01 // Commit a placement
	CB_DELETE_REQ uint16 = 0x0B02 // Remove an owned object

	// Build Server -> Client
	BC_ACK uint16 = 0x0B81 // Request acknowledged
)

// Ack status codes.
const (
	AckOK       uint8 = 0
	AckRejected uint8 = 1
)

// PlaceRequest (CB_PLACE_REQ 0x0B01)
type PlaceRequest struct {
	PacketID  uint16
	RequestID uuid.UUID
	CatalogID [32]byte // NUL-padded
	X, Y, Z   float32
	Yaw       float32
}

// SetCatalogID fills the fixed-width catalog id field.
func (p *PlaceRequest) SetCatalogID(id string) {
	copy(p.CatalogID[:], id)
}

// Size returns packet size.
func (p *PlaceRequest) Size() int {
	return 66
}

// Encode encodes the packet to bytes.
func (p *PlaceRequest) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf[0:], p.PacketID)
	copy(buf[2:18], p.RequestID[:])
	copy(buf[18:50], p.CatalogID[:])
	binary.LittleEndian.PutUint32(buf[50:], math.Float32bits(p.X))
	binary.LittleEndian.PutUint32(buf[54:], math.Float32bits(p.Y))
	binary.LittleEndian.PutUint32(buf[58:], math.Float32bits(p.Z))
	binary.LittleEndian.PutUint32(buf[62:], math.Float32bits(p.Yaw))
	return buf
}

// DeleteRequest (CB_DELETE_REQ 0x0B02)
type DeleteRequest struct {
	PacketID  uint16
	RequestID uuid.UUID
	Ref       uint32
}

// Size returns packet size.
func (p *DeleteRequest) Size() int {
	return 22
}

// Encode encodes the packet to bytes.
func (p *DeleteRequest) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf[0:], p.PacketID)
	copy(buf[2:18], p.RequestID[:])
	binary.LittleEndian.PutUint32(buf[18:], p.Ref)
	return buf
}

// AckSize is the fixed size of a BC_ACK packet.
const AckSize = 19

// Ack (BC_ACK 0x0B81)
type Ack struct {
	PacketID  uint16
	RequestID uuid.UUID
	Status    uint8
}

// DecodeAck parses an ack packet. Returns nil if the data is short.
func DecodeAck(data []byte) *Ack {
	if len(data) < AckSize {
		return nil
	}
	ack := &Ack{
		PacketID: binary.LittleEndian.Uint16(data[0:]),
		Status:   data[18],
	}
	copy(ack.RequestID[:], data[2:18])
	return ack
}
