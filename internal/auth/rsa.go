// Package auth encrypts login passwords the way the MES backend expects:
// RSA PKCS#1 v1.5 with the ciphertext base64-encoded.
package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
	"strings"
)

// ParsePublicKey accepts a PEM block or bare base64 DER (PKIX or PKCS#1).
// Whitespace inside bare base64 is ignored.
func ParsePublicKey(key string) (*rsa.PublicKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("public key is empty")
	}

	var der []byte
	if block, _ := pem.Decode([]byte(key)); block != nil {
		der = block.Bytes
	} else {
		compact := strings.Join(strings.Fields(key), "")
		decoded, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			return nil, fmt.Errorf("decoding public key: %w", err)
		}
		der = decoded
	}

	if pub, err := x509.ParsePKIXPublicKey(der); err == nil {
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is %T, not RSA", pub)
		}
		return rsaPub, nil
	}
	pub, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return pub, nil
}

// Encryptor encrypts passwords with a fixed public key.
type Encryptor struct {
	pub    *rsa.PublicKey
	random io.Reader
}

// NewEncryptor parses key once for repeated use.
func NewEncryptor(key string) (*Encryptor, error) {
	pub, err := ParsePublicKey(key)
	if err != nil {
		return nil, err
	}
	return &Encryptor{pub: pub, random: rand.Reader}, nil
}

// Encrypt returns base64(RSA-PKCS1v15(plain)). Output differs on every call
// because of random padding.
func (e *Encryptor) Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password is empty")
	}
	out, err := rsa.EncryptPKCS1v15(e.random, e.pub, []byte(plain))
	if err != nil {
		return "", fmt.Errorf("encrypting password: %w", err)
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// EncryptPassword is a one-shot Encrypt.
func EncryptPassword(publicKey, plain string) (string, error) {
	enc, err := NewEncryptor(publicKey)
	if err != nil {
		return "", err
	}
	return enc.Encrypt(plain)
}
