// Package tui implements the full-screen terminal front end of cmd/fuzzgo.
//
// The screen is split into a bottom-anchored prompt line, a counts line,
// and a result list growing upward. The finder's wake-up descriptor and
// the item stream are serviced by background goroutines that post events
// into the tcell event loop; redraws are coalesced through a rate limiter
// so a fast producer cannot saturate the terminal.
package tui
