//go:build cgo && windows

package main

/*
#include <windows.h>

extern void npclientDetach(void);

BOOL WINAPI DllMain(HINSTANCE instance, DWORD reason, LPVOID reserved) {
	if (reason == DLL_PROCESS_DETACH) {
		npclientDetach();
	}
	return TRUE;
}
*/
import "C"
