// Package ui provides the terminal user interface for pagetrack.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model holds every piece of screen
// state and is updated only from Update; all storage work runs in tea.Cmd
// functions against state.Store, whose subscription channel feeds fresh
// snapshots back in as messages.
//
// # Screens
//
//   - Entry: login/register form. The auth.Gate decides whether to continue.
//   - Statistics: read/unread bar chart, totals, and a progress row per book
//     with a page stepper and a 1-5 star rating.
//   - Books: the collection as a table with add, edit, and delete.
//
// Statistics and Books are peer tabs; switching between them re-reads
// storage so each tab shows what is on disk.
//
// # Overlays
//
// Modals stack. The book editor stays open underneath the "Missing fields"
// alert so nothing typed is lost. Ratings live only in the model and are
// logged, never stored.
//
// # Key Bindings
//
//   - s / b / Tab: Statistics, Books, switch tab
//   - j/k, g/G: move selection
//   - a, e, d: add, edit, delete (Books)
//   - +/-, 1-5: step pages, rate (Statistics)
//   - T: cycle theme
//   - h/?: help
//   - q or Ctrl+C: quit
package ui
