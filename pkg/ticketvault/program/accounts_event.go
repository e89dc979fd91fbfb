package program

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const MaxEventDescriptionLength = 256

const (
	EventAccountSize = (8 + // discriminator
		32 + // creator
		1 + // bump
		4 + // capacity
		4 + // tickets_sold
		1 + // tickets_available
		MaxEventDescriptionLength + // description
		8 + // ticket_fee
		8) // deposit_amount
)

var EventAccountDiscriminator = []byte{byte(AccountTypeEvent), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

type EventAccount struct {
	Creator          ed25519.PublicKey
	Bump             uint8
	Capacity         uint32
	TicketsSold      uint32
	TicketsAvailable bool
	Description      string
	TicketFee        uint64
	DepositAmount    uint64
}

func (obj *EventAccount) Marshal() []byte {
	data := make([]byte, EventAccountSize)

	var offset int
	putDiscriminator(data, EventAccountDiscriminator, &offset)
	putKey(data, obj.Creator, &offset)
	putUint8(data, obj.Bump, &offset)
	putUint32(data, obj.Capacity, &offset)
	putUint32(data, obj.TicketsSold, &offset)
	putBool(data, obj.TicketsAvailable, &offset)
	putFixedString(data, obj.Description, MaxEventDescriptionLength, &offset)
	putUint64(data, obj.TicketFee, &offset)
	putUint64(data, obj.DepositAmount, &offset)

	return data
}

func (obj *EventAccount) Unmarshal(data []byte) error {
	if len(data) < EventAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, EventAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Creator, &offset)
	getUint8(data, &obj.Bump, &offset)
	getUint32(data, &obj.Capacity, &offset)
	getUint32(data, &obj.TicketsSold, &offset)
	getBool(data, &obj.TicketsAvailable, &offset)
	getFixedString(data, &obj.Description, MaxEventDescriptionLength, &offset)
	getUint64(data, &obj.TicketFee, &offset)
	getUint64(data, &obj.DepositAmount, &offset)

	return nil
}

func (obj *EventAccount) String() string {
	return fmt.Sprintf(
		"EventAccount{creator=%s,bump=%d,capacity=%d,tickets_sold=%d,tickets_available=%v,description=%s,ticket_fee=%d,deposit_amount=%d}",
		base58.Encode(obj.Creator),
		obj.Bump,
		obj.Capacity,
		obj.TicketsSold,
		obj.TicketsAvailable,
		obj.Description,
		obj.TicketFee,
		obj.DepositAmount,
	)
}
