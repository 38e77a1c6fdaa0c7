package ir

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainSchema = "neoschema/schema/v1"
	DomainConfig = "neoschema/config/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SchemaHash returns the content address of a type definition document.
// The text is NFC normalised first, so visually identical documents that
// differ only in Unicode composition hash the same.
func SchemaHash(sdl string) string {
	return hashWithDomain(DomainSchema, []byte(norm.NFC.String(sdl)))
}

// ConfigHash returns the content address of a canonical config encoding.
func ConfigHash(canonical []byte) string {
	return hashWithDomain(DomainConfig, canonical)
}
