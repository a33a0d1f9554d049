//go:build cgo && !windows

package main

/*
extern void npclientDetach(void);

__attribute__((destructor)) static void npclient_fini(void) {
	npclientDetach();
}
*/
import "C"
