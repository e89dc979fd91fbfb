package program

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

const TicketIdLength = 16

const (
	TicketAccountSize = (8 + // discriminator
		32 + // event
		32 + // user
		1 + // bump
		8 + // amount_deposited
		1 + // claimed
		1 + // class
		TicketIdLength) // id
)

var TicketAccountDiscriminator = []byte{byte(AccountTypeTicket), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

type TicketId [TicketIdLength]byte

func (id TicketId) String() string {
	return hex.EncodeToString(id[:])
}

func NewTicketIdFromString(value string) (TicketId, error) {
	var id TicketId

	decoded, err := hex.DecodeString(value)
	if err != nil {
		return id, err
	}
	if len(decoded) != TicketIdLength {
		return id, ErrInvalidAccountData
	}

	copy(id[:], decoded)
	return id, nil
}

// GetTicketId generates a ticket id from the enrolling user and a nonce,
// matching the hash-based id of the on-chain program.
func GetTicketId(user ed25519.PublicKey, nonce int64) TicketId {
	nonceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceBytes, uint64(nonce))

	hashed := sha256.Sum256(append(user, nonceBytes...))

	var id TicketId
	copy(id[:], hashed[:TicketIdLength])
	return id
}

type TicketClass uint8

const (
	TicketClassGeneral TicketClass = iota
	TicketClassVIP
	TicketClassBackstage
)

func (c TicketClass) String() string {
	switch c {
	case TicketClassGeneral:
		return "general"
	case TicketClassVIP:
		return "vip"
	case TicketClassBackstage:
		return "backstage"
	}
	return "unknown"
}

// GetTicketClassFromFee maps a ticket fee to the class tier of the issued
// ticket. Tiers follow the on-chain program's quark thresholds.
func GetTicketClassFromFee(fee uint64) TicketClass {
	switch {
	case fee == 1_000_000_000:
		return TicketClassGeneral
	case fee >= 10_000_000_000:
		return TicketClassVIP
	default:
		return TicketClassBackstage
	}
}

type TicketAccount struct {
	Event           ed25519.PublicKey
	User            ed25519.PublicKey
	Bump            uint8
	AmountDeposited uint64
	Claimed         bool
	Class           TicketClass
	Id              TicketId
}

func (obj *TicketAccount) Marshal() []byte {
	data := make([]byte, TicketAccountSize)

	var offset int
	putDiscriminator(data, TicketAccountDiscriminator, &offset)
	putKey(data, obj.Event, &offset)
	putKey(data, obj.User, &offset)
	putUint8(data, obj.Bump, &offset)
	putUint64(data, obj.AmountDeposited, &offset)
	putBool(data, obj.Claimed, &offset)
	putUint8(data, uint8(obj.Class), &offset)
	putData(data, obj.Id[:], TicketIdLength, &offset)

	return data
}

func (obj *TicketAccount) Unmarshal(data []byte) error {
	if len(data) < TicketAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, TicketAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Event, &offset)
	getKey(data, &obj.User, &offset)
	getUint8(data, &obj.Bump, &offset)
	getUint64(data, &obj.AmountDeposited, &offset)
	getBool(data, &obj.Claimed, &offset)

	var class uint8
	getUint8(data, &class, &offset)
	obj.Class = TicketClass(class)

	getData(data, obj.Id[:], TicketIdLength, &offset)

	return nil
}

func (obj *TicketAccount) String() string {
	return fmt.Sprintf(
		"TicketAccount{event=%s,user=%s,bump=%d,amount_deposited=%d,claimed=%v,class=%s,id=%s}",
		base58.Encode(obj.Event),
		base58.Encode(obj.User),
		obj.Bump,
		obj.AmountDeposited,
		obj.Claimed,
		obj.Class,
		obj.Id,
	)
}
