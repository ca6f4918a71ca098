package codec

// The legacy slot has 4 bytes per chain pointer. Bits 32-35 of the previous
// pointer live in the high nibble of the in-use byte, those of the next pointer
// in bits 16-19 of the type word.

// NoPointer ends a property chain, it is the widened form of 0xFFFFFFFF
const NoPointer uint64 = 0xFFFFFFFFF

// MaxPointer is the largest pointer a slot can hold
const MaxPointer = NoPointer

// Widen combines a stored 32 bit pointer with the high nibble of modifier
func Widen(raw uint32, modifier uint8) uint64 {
	return uint64(raw) | (uint64(modifier)&0xF0)<<28
}

// WidenNext combines a stored 32 bit pointer with bits 16-19 of the type word
func WidenNext(raw uint32, typeWord uint32) uint64 {
	return uint64(raw) | (uint64(typeWord)&0xF0000)<<16
}

func IsNoPointer(p uint64) bool {
	return p == NoPointer
}

// Narrow splits a pointer into its stored low 32 bits and the 4 bit nibble
// that has to be smuggled into another field
func Narrow(p uint64) (raw uint32, nibble uint8) {
	return uint32(p), uint8(p>>32) & 0x0F
}
