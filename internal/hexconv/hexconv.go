package hexconv

// Halfbyte maps ASCII hex digits to their values. Any other character maps to 0xFF.
var Halfbyte = newTable()

func newTable() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 0xa
		table[c-('a'-'A')] = c - 'a' + 0xa
	}

	return table
}
