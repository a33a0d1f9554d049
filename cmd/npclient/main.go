// Command npclient builds the legacy head tracker client library:
//
//	go build -buildmode=c-shared -o NPClient64.dll ./cmd/npclient
//
// The exported NP_* symbols serve games from the shared pose record through
// the process-wide bridge in package npclient. Unloading the library leaves
// the record disabled.
//
// Only 64-bit builds are supported. Go exports use the C calling convention,
// while 32-bit games call NPClient.dll with __stdcall and would corrupt their
// stack.
package main

import (
	"unsafe"

	"github.com/srediag/plugin-npclient/api"
	"github.com/srediag/plugin-npclient/pkg/npclient"
)

func main() {}

// getData fills the 68-byte packet at data.
func getData(data unsafe.Pointer) int32 {
	if data == nil {
		return int32(api.StatusDisabled)
	}
	return int32(npclient.GetData(unsafe.Slice((*byte)(data), npclient.PacketSize)))
}

// getSignature fills the two 200-byte signature fields at sig.
func getSignature(sig unsafe.Pointer) int32 {
	if sig == nil {
		return 0
	}
	s := npclient.GetSignature()
	dst := unsafe.Slice((*byte)(sig), 2*npclient.SignatureSize)
	copy(dst, s.DllSignature[:])
	copy(dst[npclient.SignatureSize:], s.AppSignature[:])
	return 0
}

func queryVersion(version *uint16) int32 {
	if version != nil {
		*version = npclient.QueryVersion()
	}
	return 0
}

func registerProgramProfileID(id uint16) int32 {
	npclient.RegisterProgramProfileID(id)
	return 0
}

// detach closes the default bridge, storing -1 into the countdown before the
// record is unmapped. It runs when the library is unloaded.
func detach() {
	_ = npclient.Shutdown()
}

func housekeeping() api.Housekeeping {
	return npclient.Default()
}
