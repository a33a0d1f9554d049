package npclient

// SignatureSize is the size of each signature buffer.
const SignatureSize = 200

// Signature is the pair of identification strings games compare against
// their copy before trusting the client.
type Signature struct {
	DllSignature [SignatureSize]byte
	AppSignature [SignatureSize]byte
}

// Each signature is stored as two blocks whose XOR is the plaintext.
var (
	dllSigA = [...]byte{
		0x1d, 0x79, 0xce, 0x35, 0x1d, 0x95, 0x79,
		0xdf, 0x4c, 0x8d, 0x55, 0xeb, 0x20, 0x17,
		0x9f, 0x26, 0x3e, 0xf0, 0x88, 0x8e, 0x7a,
		0x08, 0x11, 0x52, 0xfc, 0xd8, 0x3f, 0xb9,
		0xd2, 0x5c, 0x61, 0x03, 0x56, 0xfd, 0xbc,
		0xb4, 0x0a, 0xf1, 0x13, 0x5d, 0x90, 0x0a,
		0x0e, 0xee, 0x09, 0x19, 0x45, 0x5a, 0xeb,
		0xe3, 0xf0, 0x58, 0x5f, 0xac, 0x23, 0x84,
		0x1f, 0xc5, 0xe3, 0xa6, 0x18, 0x5d, 0xb8,
		0x47, 0xdc, 0xe6, 0xf2, 0x0b, 0x03, 0x55,
		0x61, 0xab, 0xe3, 0x57, 0xe3, 0x67, 0xcc,
		0x16, 0x38, 0x3c, 0x11, 0x25, 0x88, 0x8a,
		0x24, 0x7f, 0xf7, 0xeb, 0xf2, 0x5d, 0x82,
		0x89, 0x05, 0x53, 0x32, 0x6b, 0x28, 0x54,
		0x13, 0xf6, 0xe7, 0x21, 0x1a, 0xc6, 0xe3,
		0xe1,
	}
	dllSigB = [...]byte{
		0x6d, 0x0b, 0xab, 0x56, 0x74, 0xe6, 0x1c,
		0xff, 0x24, 0xe8, 0x34, 0x8f, 0x00, 0x63,
		0xed, 0x47, 0x5d, 0x9b, 0xe1, 0xe0, 0x1d,
		0x02, 0x31, 0x22, 0x89, 0xac, 0x1f, 0xc0,
		0xbd, 0x29, 0x13, 0x23, 0x3e, 0x98, 0xdd,
		0xd0, 0x2a, 0x98, 0x7d, 0x29, 0xff, 0x2a,
		0x7a, 0x86, 0x6c, 0x39, 0x22, 0x3b, 0x86,
		0x86, 0xfa, 0x78, 0x31, 0xc3, 0x54, 0xa4,
		0x78, 0xaa, 0xc3, 0xca, 0x77, 0x32, 0xd3,
		0x67, 0xbd, 0x94, 0x9d, 0x7e, 0x6d, 0x31,
		0x6b, 0xa1, 0xc3, 0x14, 0x8c, 0x17, 0xb5,
		0x64, 0x51, 0x5b, 0x79, 0x51, 0xa8, 0xcf,
		0x5d, 0x1a, 0xb4, 0x84, 0x9c, 0x29, 0xf0,
		0xe6, 0x69, 0x73, 0x66, 0x0e, 0x4b, 0x3c,
		0x7d, 0x99, 0x8b, 0x4e, 0x7d, 0xaf, 0x86,
		0x92,
	}
	appSigA = [...]byte{
		0x8b, 0x84, 0xfc, 0x8c, 0x71, 0xb5, 0xd9,
		0xaa, 0xda, 0x32, 0xc7, 0xe9, 0x0c, 0x20,
		0x40, 0xd4, 0x4b, 0x02, 0x89, 0xca, 0xde,
		0x61, 0x9d, 0xfb, 0xb3, 0x8c, 0x97, 0x8a,
		0x13, 0x6a, 0x0f, 0xf8, 0xf8, 0x0d, 0x65,
		0x1b, 0xe3, 0x05, 0x1e, 0xb6, 0xf6, 0xd9,
		0x13, 0xad, 0xeb, 0x38, 0xdd, 0x86, 0xfc,
		0x59, 0x2e, 0xf6, 0x2e, 0xf4, 0xb0, 0xb0,
		0xfd, 0xb0, 0x70, 0x23, 0xfb, 0xc9, 0x1a,
		0x50, 0x89, 0x92, 0xf0, 0x01, 0x09, 0xa1,
		0xfd, 0x5b, 0x19, 0x29, 0x73, 0x59, 0x2b,
		0x81, 0x83, 0x9e, 0x11, 0xf3, 0xa2, 0x1f,
		0xc8, 0x24, 0x53, 0x60, 0x0a, 0x42, 0x78,
		0x7a, 0x39, 0xea, 0xc1, 0x59, 0xad, 0xc5,
	}
	appSigB = [...]byte{
		0xe3, 0xe5, 0x8e, 0xe8, 0x06, 0xd4, 0xab,
		0xcf, 0xfa, 0x51, 0xa6, 0x84, 0x69, 0x52,
		0x21, 0xde, 0x6b, 0x71, 0xe6, 0xac, 0xaa,
		0x16, 0xfc, 0x89, 0xd6, 0xac, 0xe7, 0xf8,
		0x7c, 0x09, 0x6a, 0x8b, 0x8b, 0x64, 0x0b,
		0x7c, 0xc3, 0x61, 0x7f, 0xc2, 0x97, 0xd3,
		0x33, 0xd9, 0x99, 0x59, 0xbe, 0xed, 0xdc,
		0x2c, 0x5d, 0x93, 0x5c, 0xd4, 0xdd, 0xdf,
		0x8b, 0xd5, 0x1d, 0x46, 0x95, 0xbd, 0x10,
		0x5a, 0xa9, 0xd1, 0x9f, 0x71, 0x70, 0xd3,
		0x94, 0x3c, 0x71, 0x5d, 0x53, 0x1c, 0x52,
		0xe4, 0xc0, 0xf1, 0x7f, 0x87, 0xd0, 0x70,
		0xa4, 0x04, 0x07, 0x05, 0x69, 0x2a, 0x16,
		0x15, 0x55, 0x85, 0xa6, 0x30, 0xc8, 0xb6,
	}
)

// GetSignature reconstructs both signatures, zero padded to SignatureSize.
func GetSignature() Signature {
	var sig Signature
	unmask(sig.DllSignature[:], dllSigA[:], dllSigB[:])
	unmask(sig.AppSignature[:], appSigA[:], appSigB[:])
	return sig
}

// Strings returns both plaintexts up to their first NUL.
func (s *Signature) Strings() (dll, app string) {
	return cstring(s.DllSignature[:]), cstring(s.AppSignature[:])
}

func unmask(dst, a, b []byte) {
	n := min(len(a), len(b), len(dst))
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	clear(dst[n:])
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
