// Package ui implements the interactive DJ console using bubbletea's Elm architecture.
//
// The console shows two views over a session's request book:
//  1. [QueueView] : the pending queue, highest tip first, with accept/reject actions
//  2. [AcceptedView] : accepted requests, with a mark-played action
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Status transitions run as [tea.Cmd] functions and report back through a
// message, keeping the update loop non-blocking.
//
// Keyboard navigation uses vim-style bindings (j/k, a/r/p, tab, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
