package engine

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"unifying.dev/frame"
)

// SoftwareAES implements AES using the standard library's block cipher in
// CTR mode, for callers without a hardware AES engine.
type SoftwareAES struct{}

// Encrypt XORs data with the first AESDataLen bytes of the AES-CTR
// keystream produced from key and iv.
func (SoftwareAES) Encrypt(data *[frame.AESDataLen]byte, key [frame.AESBlockLen]byte, iv [frame.AESBlockLen]byte) error {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return fmt.Errorf("engine: aes: %w", err)
	}
	stream := cipher.NewCTR(block, iv[:])
	stream.XORKeyStream(data[:], data[:])
	return nil
}
