package meshxml

import "strconv"

// formatFloat renders the shortest decimal that reads back as the same
// float32. strconv never consults the locale and 'f' never uses exponents.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatCount(n int) string {
	return strconv.FormatUint(uint64(uint32(n)), 10)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
