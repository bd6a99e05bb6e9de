package rng

const murmurM = 0x5bd1e995

// Murmur2 is the 32-bit MurmurHash2 of data with the given seed.
func Murmur2(data []byte, seed uint32) uint32 {
	n := len(data)
	h := seed ^ uint32(n)

	i := 0
	for n >= 4 {
		k := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
		k *= murmurM
		k ^= k >> 24
		k *= murmurM
		h = h*murmurM ^ k
		i += 4
		n -= 4
	}

	switch n {
	case 3:
		h ^= uint32(data[i+2]) << 16
		fallthrough
	case 2:
		h ^= uint32(data[i+1]) << 8
		fallthrough
	case 1:
		h ^= uint32(data[i])
		h *= murmurM
	}

	h ^= h >> 13
	h *= murmurM
	h ^= h >> 15
	return h
}
