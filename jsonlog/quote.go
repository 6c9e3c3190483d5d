package jsonlog

const hexDigits = "0123456789abcdef"

// appendQuoted appends s as a JSON string literal. Only the characters JSON
// requires to be escaped are touched: the quote, the backslash and control
// bytes. Every other byte, including non-ASCII UTF-8, is copied as is.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}

		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	dst = append(dst, s[start:]...)

	return append(dst, '"')
}

func quote(s string) string {
	return string(appendQuoted(make([]byte, 0, len(s)+2), s))
}
