//go:build cgo

package main

import "C"

import "unsafe"

//export npclientDetach
func npclientDetach() { detach() }

//export NP_GetData
func NP_GetData(data unsafe.Pointer) int32 { return getData(data) }

//export NP_GetSignature
func NP_GetSignature(sig unsafe.Pointer) int32 { return getSignature(sig) }

//export NP_QueryVersion
func NP_QueryVersion(version *uint16) int32 { return queryVersion(version) }

//export NP_RegisterProgramProfileID
func NP_RegisterProgramProfileID(id uint16) int32 { return registerProgramProfileID(id) }

//export NP_GetParameter
func NP_GetParameter(arg0, arg1 int32) int32 { return housekeeping().GetParameter(arg0, arg1) }

//export NP_SetParameter
func NP_SetParameter(arg0, arg1 int32) int32 { return housekeeping().SetParameter(arg0, arg1) }

//export NP_ReCenter
func NP_ReCenter() int32 { return housekeeping().ReCenter() }

//export NP_RegisterWindowHandle
func NP_RegisterWindowHandle(hwnd uintptr) int32 { return housekeeping().RegisterWindowHandle(hwnd) }

//export NP_UnregisterWindowHandle
func NP_UnregisterWindowHandle() int32 { return housekeeping().UnregisterWindowHandle() }

//export NP_RequestData
func NP_RequestData(req uint16) int32 { return housekeeping().RequestData(req) }

//export NP_StartCursor
func NP_StartCursor() int32 { return housekeeping().StartCursor() }

//export NP_StopCursor
func NP_StopCursor() int32 { return housekeeping().StopCursor() }

//export NP_StartDataTransmission
func NP_StartDataTransmission() int32 { return housekeeping().StartDataTransmission() }

//export NP_StopDataTransmission
func NP_StopDataTransmission() int32 { return housekeeping().StopDataTransmission() }

//export NPPriv_ClientNotify
func NPPriv_ClientNotify() int32 { return housekeeping().PrivClientNotify() }

//export NPPriv_GetLastError
func NPPriv_GetLastError() int32 { return housekeeping().PrivGetLastError() }

//export NPPriv_SetData
func NPPriv_SetData() int32 { return housekeeping().PrivSetData() }

//export NPPriv_SetLastError
func NPPriv_SetLastError() int32 { return housekeeping().PrivSetLastError() }

//export NPPriv_SetParameter
func NPPriv_SetParameter() int32 { return housekeeping().PrivSetParameter() }

//export NPPriv_SetSignature
func NPPriv_SetSignature() int32 { return housekeeping().PrivSetSignature() }

//export NPPriv_SetVersion
func NPPriv_SetVersion() int32 { return housekeeping().PrivSetVersion() }
