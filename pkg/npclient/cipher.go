package npclient

// CipherTable is the 8-byte key published by the producer.
type CipherTable [8]byte

// Enabled reports whether any byte is non-zero. An all-zero table means the
// game expects plain packets.
func (t CipherTable) Enabled() bool {
	return t != CipherTable{}
}

// Cipher obfuscates buf in place, walking from the last byte to the first.
// Each byte is XORed with the next table entry and a running byte that starts
// at 0x88 and advances by the byte's position plus its original value.
//
// Applying Cipher twice does not restore the input: the second pass advances
// the running byte with already transformed values. Decoding is the consumer's
// mirror of this loop.
func Cipher(buf []byte, table []byte) {
	if len(buf) == 0 || len(table) == 0 {
		return
	}
	var (
		v = byte(0x88)
		t int
	)
	for i := len(buf) - 1; i >= 0; i-- {
		tmp := buf[i]
		buf[i] = tmp ^ table[t] ^ v
		v += byte(i) + tmp
		t++
		if t >= len(table) {
			t = 0
		}
	}
}
