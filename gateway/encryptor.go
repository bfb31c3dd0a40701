package gateway

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/hmac"
	"fmt"
	"strings"

	"gitee.com/golang-module/dongle"
)

const (
	SignatureModeSimple = "simple"
	SignatureModeSha512 = "sha512"

	SignatureVersionSha256 = "HMAC_SHA256_V1"
	SignatureVersionSha512 = "HMAC_SHA512_V2"
)

// Encryptor signs merchant parameters the way Redsys expects: the order number is
// encrypted with 3DES under the merchant key, and the result keys an HMAC of the
// Base64 parameters.
type Encryptor struct {
	secret  string // merchant key encoded with Base64
	version string
}

func NewEncryptor(secret string, version string) *Encryptor {
	return &Encryptor{
		secret:  secret,
		version: version,
	}
}

// signatureVersion maps a gateway signature mode to the Ds_SignatureVersion it produces.
func signatureVersion(mode string) (string, error) {
	switch mode {
	case "", SignatureModeSimple:
		return SignatureVersionSha256, nil
	case SignatureModeSha512:
		return SignatureVersionSha512, nil
	}
	return "", fmt.Errorf("unknown signature mode %q", mode)
}

func (e *Encryptor) Version() string {
	return e.version
}

// CreateSignature returns the Base64 signature of parameters for the given order.
func (e *Encryptor) CreateSignature(parameters string, order string) (string, error) {
	decoded := dongle.Decode.FromString(e.secret).ByBase64()
	if decoded.Error != nil {
		return "", fmt.Errorf("decode secret: %v", decoded.Error)
	}

	// encrypt order with 3DES
	orderKey, err := e.encrypt3DES(order, decoded.ToBytes())
	if err != nil {
		return "", fmt.Errorf("encrypt3DES: %v", err)
	}

	hash, err := e.mac(parameters, orderKey)
	if err != nil {
		return "", err
	}
	return dongle.Encode.FromBytes(hash).ByBase64().ToString(), nil
}

// Verify reports whether signature matches parameters. Both sides are compared
// in the URL-safe alphabet because notifications may use either one.
func (e *Encryptor) Verify(parameters string, order string, signature string) (bool, error) {
	expected, err := e.CreateSignature(parameters, order)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(toURLSafe(expected)), []byte(toURLSafe(signature))), nil
}

func (e *Encryptor) encrypt3DES(plainText string, key []byte) ([]byte, error) {
	if plainText == "" {
		return nil, fmt.Errorf("plainText cannot be empty")
	}

	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		return nil, err
	}

	// zero padding up to the block boundary only
	toEncrypt := []byte(plainText)
	if rest := len(toEncrypt) % block.BlockSize(); rest != 0 {
		toEncrypt = append(toEncrypt, bytes.Repeat([]byte{0}, block.BlockSize()-rest)...)
	}

	iv := make([]byte, block.BlockSize())
	ciphertext := make([]byte, len(toEncrypt))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, toEncrypt)

	return ciphertext, nil
}

func (e *Encryptor) mac(message string, key []byte) ([]byte, error) {
	var encrypted dongle.Encrypter
	switch e.version {
	case SignatureVersionSha256:
		encrypted = dongle.Encrypt.FromString(message).ByHmacSha256(key)
	case SignatureVersionSha512:
		encrypted = dongle.Encrypt.FromString(message).ByHmacSha512(key)
	default:
		return nil, fmt.Errorf("unsupported signature version %q", e.version)
	}
	if encrypted.Error != nil {
		return nil, fmt.Errorf("hmac: %v", encrypted.Error)
	}
	return encrypted.ToRawBytes(), nil
}

var (
	toStandardAlphabet = strings.NewReplacer("-", "+", "_", "/")
	toURLSafeAlphabet  = strings.NewReplacer("+", "-", "/", "_")
)

func toURLSafe(s string) string {
	return toURLSafeAlphabet.Replace(s)
}
