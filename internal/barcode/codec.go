// README: Package barcode codec; OpenSSL-salted AES-256-CBC, matching the legacy client format.
package barcode

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	saltedHeader = "Salted__"
	saltLen      = 8

	// magicPrefix is what the salted header encodes to in base64. Every
	// ciphertext this codec emits starts with it.
	magicPrefix = "U2FsdGVkX1"
)

var errMalformed = errors.New("barcode: malformed ciphertext")

// Encrypt encrypts plaintext with the shared key. A fresh random salt is drawn
// per call, so two encryptions of the same value never produce the same output.
func Encrypt(plain, key string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	aesKey, iv := deriveKeyIV(key, salt)
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return "", err
	}

	padded := pad([]byte(plain), block.BlockSize())
	out := make([]byte, 0, len(saltedHeader)+saltLen+len(padded))
	out = append(out, saltedHeader...)
	out = append(out, salt...)

	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	out = append(out, ct...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt is the inverse of Encrypt. It never fails: wrong key, malformed
// input, or a plaintext value passed by mistake all return the input unchanged
// so a bad barcode never takes down the rider flow.
func Decrypt(value, key string) string {
	plain, err := decrypt(value, key)
	if err != nil || plain == "" {
		return value
	}
	return plain
}

func decrypt(value, key string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", errMalformed
	}
	if len(raw) < len(saltedHeader)+saltLen || string(raw[:len(saltedHeader)]) != saltedHeader {
		return "", errMalformed
	}
	salt := raw[len(saltedHeader) : len(saltedHeader)+saltLen]
	ct := raw[len(saltedHeader)+saltLen:]
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", errMalformed
	}

	aesKey, iv := deriveKeyIV(key, salt)
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return "", err
	}

	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)

	plain, err = unpad(plain, block.BlockSize())
	if err != nil {
		return "", err
	}
	// A wrong key decrypts to garbage; valid payloads are printable strings.
	if !utf8.Valid(plain) {
		return "", errMalformed
	}
	return string(plain), nil
}

// LooksEncrypted reports whether value is probably a ciphertext this codec
// produced. It is a heuristic carried over from the legacy client, not a
// type-safe discriminant: a long plaintext containing '=' is misclassified.
func LooksEncrypted(value string) bool {
	return strings.Contains(value, magicPrefix) ||
		(len(value) > 20 && strings.Contains(value, "="))
}

// deriveKeyIV derives a 32-byte AES key and 16-byte IV from the passphrase and
// salt using the OpenSSL EVP_BytesToKey construction (MD5, one round).
func deriveKeyIV(pass string, salt []byte) (key, iv []byte) {
	var derived []byte
	var prev []byte
	for len(derived) < 48 {
		h := md5.New()
		h.Write(prev)
		h.Write([]byte(pass))
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:32], derived[32:48]
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, errMalformed
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, errMalformed
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, errMalformed
		}
	}
	return b[:len(b)-n], nil
}
