package digest

// cksumPoly is the CRC-32 generator polynomial used by POSIX cksum(1),
// bit-reversed relative to the IEEE polynomial in hash/crc32.
const cksumPoly = 0x04c11db7

// cksumTable is the byte-at-a-time lookup table for the MSB-first cksum CRC.
var cksumTable = makeCksumTable()

func makeCksumTable() [256]uint32 {
	var table [256]uint32

	for i := range table {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ cksumPoly
			} else {
				crc <<= 1
			}
		}

		table[i] = crc
	}

	return table
}

// unixCksum computes the POSIX cksum(1) CRC of data: an MSB-first CRC-32
// over the data followed by the data length encoded as its minimal
// little-endian byte sequence, with the final value complemented.
func unixCksum(data []byte) uint32 {
	var crc uint32

	for _, b := range data {
		crc = crc<<8 ^ cksumTable[byte(crc>>24)^b]
	}

	for n := len(data); n != 0; n >>= 8 {
		crc = crc<<8 ^ cksumTable[byte(crc>>24)^byte(n)]
	}

	return ^crc
}

// unixSum computes the historic BSD sum(1) checksum of data: a 16-bit
// accumulator rotated right one bit before each byte is added.
func unixSum(data []byte) uint16 {
	var sum uint16

	for _, b := range data {
		sum = sum>>1 | sum<<15
		sum += uint16(b)
	}

	return sum
}
