// Package logtail reads the end of the pagetrack log file.
//
// # Overview
//
// The TUI sends its log output to a file so it never draws over the screen.
// `pagetrack logs` uses this package to show the most recent lines, optionally
// narrowed with a case-insensitive substring filter.
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays at O(maxLines) regardless of file size. Lines come back in
// file order. A non-positive maxLines returns the whole file, and a missing
// file is treated as an empty log.
//
//	lines, err := logtail.Read(cfg.LogPath, 200)
//	if err != nil {
//		return err
//	}
//	for _, line := range logtail.Filter(lines, "reload") {
//		fmt.Println(line)
//	}
//
// Lines longer than 1 MiB cause a read error.
package logtail
