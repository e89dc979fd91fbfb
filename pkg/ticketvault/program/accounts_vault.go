package program

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	VaultAccountSize = (8 + // discriminator
		32 + // owner
		1) // bump
)

var VaultAccountDiscriminator = []byte{byte(AccountTypeVault), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

type VaultAccount struct {
	Owner ed25519.PublicKey
	Bump  uint8
}

func (obj *VaultAccount) Marshal() []byte {
	data := make([]byte, VaultAccountSize)

	var offset int
	putDiscriminator(data, VaultAccountDiscriminator, &offset)
	putKey(data, obj.Owner, &offset)
	putUint8(data, obj.Bump, &offset)

	return data
}

func (obj *VaultAccount) Unmarshal(data []byte) error {
	if len(data) < VaultAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, VaultAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Owner, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *VaultAccount) String() string {
	return fmt.Sprintf(
		"VaultAccount{owner=%s,bump=%d}",
		base58.Encode(obj.Owner),
		obj.Bump,
	)
}
