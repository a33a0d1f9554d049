package npclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	dllPlain = "precise head tracking\n put your head into the game\n now go look around\n\n Copyright EyeControl Technologies"
	appPlain = "hardware camera\n software processing data\n track user movement\n\n Copyright EyeControl Technologies"
)

func TestSignaturePlaintext(t *testing.T) {
	sig := GetSignature()
	assert.Len(t, sig.DllSignature, SignatureSize)
	assert.Len(t, sig.AppSignature, SignatureSize)

	assert.Len(t, dllPlain, len(dllSigA))
	assert.Len(t, appPlain, len(appSigA))
	assert.Equal(t, dllPlain, string(sig.DllSignature[:len(dllPlain)]))
	assert.Equal(t, appPlain, string(sig.AppSignature[:len(appPlain)]))

	for i := len(dllPlain); i < SignatureSize; i++ {
		assert.Zero(t, sig.DllSignature[i], "dll byte %d", i)
	}
	for i := len(appPlain); i < SignatureSize; i++ {
		assert.Zero(t, sig.AppSignature[i], "app byte %d", i)
	}

	dll, app := sig.Strings()
	assert.Equal(t, dllPlain, dll)
	assert.Equal(t, appPlain, app)
}

func TestSignatureIsDeterministic(t *testing.T) {
	assert.Equal(t, GetSignature(), GetSignature())
}

func TestUnmaskUsesShorterBlock(t *testing.T) {
	dst := []byte{9, 9, 9, 9, 9}
	unmask(dst, []byte{0xf0, 0x0f, 0xff}, []byte{0x0f, 0x0f})
	assert.Equal(t, []byte{0xff, 0x00, 0, 0, 0}, dst)
}
