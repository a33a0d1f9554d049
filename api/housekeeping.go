// Package api defines the consumer-facing contract of the legacy head tracker client.
package api

import "github.com/srediag/plugin-npclient/internal/debug"

var internalLogger = debug.New("api", nil)

// Housekeeping is the part of the client surface games call for protocol
// bookkeeping. None of it influences the data path; every call reports 0.
type Housekeeping interface {
	PrivClientNotify() int32
	PrivGetLastError() int32
	PrivSetData() int32
	PrivSetLastError() int32
	PrivSetParameter() int32
	PrivSetSignature() int32
	PrivSetVersion() int32

	GetParameter(arg0, arg1 int32) int32
	SetParameter(arg0, arg1 int32) int32
	ReCenter() int32
	RegisterWindowHandle(hwnd uintptr) int32
	UnregisterWindowHandle() int32
	RequestData(req uint16) int32
	StartCursor() int32
	StopCursor() int32
	StartDataTransmission() int32
	StopDataTransmission() int32
}

// NopHousekeeping implements Housekeeping by logging the request and succeeding.
// Embed it to satisfy the full surface.
type NopHousekeeping struct{}

var _ Housekeeping = NopHousekeeping{}

func (NopHousekeeping) PrivClientNotify() int32 { return stub("ClientNotify") }
func (NopHousekeeping) PrivGetLastError() int32 { return stub("GetLastError") }
func (NopHousekeeping) PrivSetData() int32      { return stub("SetData") }
func (NopHousekeeping) PrivSetLastError() int32 { return stub("SetLastError") }
func (NopHousekeeping) PrivSetParameter() int32 { return stub("SetParameter") }
func (NopHousekeeping) PrivSetSignature() int32 { return stub("SetSignature") }
func (NopHousekeeping) PrivSetVersion() int32   { return stub("SetVersion") }

func (NopHousekeeping) GetParameter(arg0, arg1 int32) int32 {
	internalLogger.Debugf("GetParameter request: %d %d", arg0, arg1)
	return 0
}

func (NopHousekeeping) SetParameter(arg0, arg1 int32) int32 {
	internalLogger.Debugf("SetParameter request: %d %d", arg0, arg1)
	return 0
}

func (NopHousekeeping) ReCenter() int32 { return stub("ReCenter") }

func (NopHousekeeping) RegisterWindowHandle(hwnd uintptr) int32 {
	internalLogger.Debugf("RegisterWindowHandle request: %#x", hwnd)
	return 0
}

func (NopHousekeeping) UnregisterWindowHandle() int32 { return stub("UnregisterWindowHandle") }

func (NopHousekeeping) RequestData(req uint16) int32 {
	internalLogger.Debugf("RequestData request: %d", req)
	return 0
}

func (NopHousekeeping) StartCursor() int32           { return stub("StartCursor") }
func (NopHousekeeping) StopCursor() int32            { return stub("StopCursor") }
func (NopHousekeeping) StartDataTransmission() int32 { return stub("StartDataTransmission") }
func (NopHousekeeping) StopDataTransmission() int32  { return stub("StopDataTransmission") }

func stub(name string) int32 {
	internalLogger.Debugf("%s request", name)
	return 0
}
