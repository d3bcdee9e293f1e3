// Package viz provides terminal rendering for letter frequencies and
// particles.
//
//   - [Histogram]: lipgloss bar chart, one bar per letter
//   - [Profile]: asciigraph line chart of the same data
//   - [Explorer]: Bubble Tea model for tuning a particle interactively
//
// # Key Bindings
//
//	Up/Down     - Change momentum by one step
//	Left/Right  - Change beta by 0.05
//	e/E         - Lower/raise energy by one step
//	+/-         - Scale the step by 10
//	r           - Reset momentum
//	q           - Quit
package viz
