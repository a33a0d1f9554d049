package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/srediag/plugin-npclient/api"
	internalshm "github.com/srediag/plugin-npclient/internal/shm"
	"github.com/srediag/plugin-npclient/pkg/freetrack"
	"github.com/srediag/plugin-npclient/pkg/npclient"
	"github.com/srediag/plugin-npclient/pkg/shm"
)

func TestEntryPoints(t *testing.T) {
	defer npclient.Shutdown()

	var version uint16
	require.Zero(t, queryVersion(&version))
	require.Equal(t, api.Version, version)
	require.Zero(t, queryVersion(nil))

	var sig [2 * npclient.SignatureSize]byte
	require.Zero(t, getSignature(unsafe.Pointer(&sig)))
	want := npclient.GetSignature()
	require.Equal(t, want.DllSignature[:], sig[:npclient.SignatureSize])
	require.Equal(t, want.AppSignature[:], sig[npclient.SignatureSize:])

	require.Equal(t, int32(api.StatusDisabled), getData(nil))

	hk := housekeeping()
	require.Zero(t, hk.ReCenter())
	require.Zero(t, hk.PrivSetVersion())
}

func TestDetachDisablesRecord(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "windows" {
		t.Skip("no named shared memory on", runtime.GOOS)
	}
	if runtime.GOOS == "linux" {
		saved := internalshm.DevShmDir
		internalshm.DevShmDir = t.TempDir()
		t.Cleanup(func() { internalshm.DevShmDir = saved })
	}
	name := fmt.Sprintf("npclient_detach_%d", os.Getpid())
	t.Setenv("NPCLIENT_SHM_NAME", name)
	t.Setenv("NPCLIENT_MUTEX_NAME", name+"_lock")
	t.Cleanup(func() { _ = internalshm.RemoveRegion(name, name+"_lock") })
	require.NoError(t, npclient.Shutdown())

	ctx := context.Background()
	require.Zero(t, registerProgramProfileID(42))
	m, err := shm.PlatformMapper{}.Map(ctx, shm.OpenOptions{Name: name, Size: freetrack.StateSize})
	require.NoError(t, err)
	defer m.Unmap(ctx)
	st, err := freetrack.View(m.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(42), st.GameID())

	pub, err := freetrack.NewPublisher(m.Bytes())
	require.NoError(t, err)
	pub.Publish(freetrack.PoseSample{Yaw: 0.2})
	require.Equal(t, freetrack.DefaultCountdown, st.Countdown())

	detach()
	require.Equal(t, freetrack.CountdownDisabled, st.Countdown())

	// a second unload finds nothing left to release
	detach()
	require.Equal(t, freetrack.CountdownDisabled, st.Countdown())
}
