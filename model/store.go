package model

const (
	// header(1) + type(4) + keyIndexId(4) + propBlock(8) + prevProp(4) + nextProp(4)
	RecordSize = 25

	StoreFileName  = "neostore.propertystore.db"
	TypeDescriptor = "PropertyStore"
	LegacyVersion  = "v0.9.9"
)

// Trailer is the version string the legacy writer appends after the last slot
func Trailer(version string) string {
	return TypeDescriptor + " " + version
}

// FooterSize is the encoded length of the trailer
func FooterSize(version string) int64 {
	return int64(len(Trailer(version)))
}
