package urlencoded

import (
	"strings"

	"github.com/indigo-web/utils/uf"
	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/internal/hexconv"
)

// Decode decodes data into the given buffer, but omits it if there's no data to be
// decoded. `into` can be data[:0] as well in order to decode "into itself".
func Decode(src, dst []byte) (decoded, buffer []byte, err error) {
	return decode(src, dst, false)
}

// ExtendedDecode is the same as Decode, but on top also decodes + as spaces.
func ExtendedDecode(src, dst []byte) (decoded, buffer []byte, err error) {
	return decode(src, dst, true)
}

// ExtendedDecodeString is ExtendedDecode operating on strings. Strings without
// anything to be decoded are returned as they are.
func ExtendedDecodeString(src string) (string, error) {
	if !strings.ContainsAny(src, "%+") {
		return src, nil
	}

	decoded, _, err := ExtendedDecode(uf.S2B(src), make([]byte, 0, len(src)))
	return string(decoded), err
}

func decode(src, dst []byte, plus bool) (decoded, buffer []byte, err error) {
	dsthead := len(dst)
	modified := false

loop:
	for i, c := range src {
		switch {
		case c == '+' && plus:
			modified = true
			dst = append(dst, src[:i]...)
			dst = append(dst, ' ')
			src = src[i+1:]
			goto loop
		case c == '%':
			modified = true

			if len(src)-i < 3 {
				return nil, dst, status.ErrURLDecoding
			}

			a, b := hexconv.Halfbyte[src[i+1]], hexconv.Halfbyte[src[i+2]]
			if a|b > 0x0f {
				return nil, dst, status.ErrURLDecoding
			}

			dst = append(dst, src[:i]...)
			dst = append(dst, (a<<4)|b)
			src = src[i+3:]
			goto loop
		}
	}

	if !modified {
		return src, dst, nil
	}

	dst = append(dst, src...)
	return dst[dsthead:], dst, nil
}
