package internal

import "unicode/utf8"

// IsASCII reports whether s only holds 7-bit characters.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

// HasControl reports whether s holds an ASCII control character or a space.
func HasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= 0x20 {
			return true
		}
	}

	return false
}

// UTF16Len counts UTF-16 code units. The RFC length limits on domains and
// addresses are enforced in this unit.
func UTF16Len(s string) int {
	var n int
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}

	return n
}
