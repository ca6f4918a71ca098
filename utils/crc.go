package utils

import "hash/crc32"

var crcTable = crc32.MakeTable(crc32.IEEE)

// GenerateCrc checksums a migrated record
func GenerateCrc(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}

func CheckCrc(crc uint32, data []byte) bool {
	return GenerateCrc(data) == crc
}
