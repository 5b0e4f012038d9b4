package privacy

import (
	"strings"

	"nostrsky/internal/constants"
)

// ShortEventID returns the leading hex characters of an event id for log
// output. Full event ids are 64 chars and drown out everything else.
// Example: "b1946ac9..." -> "b1946ac9"
func ShortEventID(id string) string {
	if len(id) <= constants.DefaultEventIDLogLength {
		return id
	}
	return id[:constants.DefaultEventIDLogLength]
}

// MaskPubKey masks a public key, keeping the bech32 prefix (when present)
// and the last few characters so operators can still correlate log lines.
// Example: "npub1v5ufyh4...x7k9" -> "npub1****x7k9"
func MaskPubKey(key string) string {
	if key == "" {
		return ""
	}

	keep := constants.DefaultPubKeyMaskLength
	prefix := ""
	if strings.HasPrefix(key, "npub1") {
		prefix = "npub1"
		key = key[len(prefix):]
	}

	if len(key) <= keep {
		return prefix + strings.Repeat("*", len(key))
	}
	return prefix + "****" + key[len(key)-keep:]
}
