// Package viz is the terminal front end: a Bubble Tea program that draws
// session frames on a braille canvas and feeds mouse and keyboard input
// back into the session.
//
// # Key Bindings
//
//	Mouse   - Aim (move) and launch (left click)
//	Arrows  - Aim from the keyboard
//	Enter/F - Launch toward the aim point
//	C       - Clear the aim point
//	Space   - Pause/Resume
//	T       - Cycle color themes
//	?       - Show help overlay
//	Q       - Quit
package viz
