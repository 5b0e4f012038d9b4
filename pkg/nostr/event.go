package nostr

import (
	"encoding/hex"
	"fmt"
	"strings"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// ParsePublicKey accepts either an npub or a 64-char hex public key and
// returns the hex form used in relay filters.
func ParsePublicKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("public key is empty")
	}

	if strings.HasPrefix(key, "npub1") {
		prefix, value, err := nip19.Decode(key)
		if err != nil {
			return "", fmt.Errorf("failed to decode npub: %w", err)
		}
		if prefix != "npub" {
			return "", fmt.Errorf("unexpected bech32 prefix %q", prefix)
		}
		hexKey, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("unexpected npub payload type %T", value)
		}
		return hexKey, nil
	}

	if len(key) != 64 {
		return "", fmt.Errorf("hex public key must be 64 characters, got %d", len(key))
	}
	if _, err := hex.DecodeString(key); err != nil {
		return "", fmt.Errorf("invalid hex public key: %w", err)
	}
	return strings.ToLower(key), nil
}

// EncodeNpub returns the bech32 npub form of a hex public key, falling back
// to the hex input when encoding fails. Used only for log output.
func EncodeNpub(hexKey string) string {
	npub, err := nip19.EncodePublicKey(hexKey)
	if err != nil {
		return hexKey
	}
	return npub
}

// IsReply reports whether the note references another event. A kind 1 note
// with any "e" tag is a reply (or quote) and is never cross-posted.
func IsReply(ev *gonostr.Event) bool {
	for _, tag := range ev.Tags {
		if len(tag) > 0 && tag[0] == "e" {
			return true
		}
	}
	return false
}
