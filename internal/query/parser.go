package query

import (
	"strings"

	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/internal/urlencoded"
	"github.com/indigo-web/waves/kv"
)

// Parse decodes an urlencoded query (or form body) into the params. Keys and values are
// unescaped separately, so escaped ampersands and equality signs are kept as a part of them.
// Flags (keys without a value) are stored with an empty value. On error, the pairs
// preceding the malformed one are already in params.
func Parse(data string, params *kv.Storage) error {
	for len(data) > 0 {
		var pair string
		pair, data, _ = strings.Cut(data, "&")
		if len(pair) == 0 {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if len(key) == 0 {
			return status.ErrBadParams
		}

		key, err := urlencoded.ExtendedDecodeString(key)
		if err != nil {
			return err
		}

		value, err = urlencoded.ExtendedDecodeString(value)
		if err != nil {
			return err
		}

		params.Add(key, value)
	}

	return nil
}
