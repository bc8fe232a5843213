// Package logtail reads the tail of imagefeed's log file for the logs view.
//
// The application logs with zerolog to <state_dir>/imagefeed.log, one JSON
// object per line. Read keeps a ring buffer of maxLines entries so large logs
// are scanned once without being held in memory; Parse decodes the fields the
// UI cares about (time, level, component, message, error) and Format renders
// them as a single terminal line:
//
//	12:30:45 WARN  [feed] page fetch dropped: busy
//
// Lines that are not JSON (a panic trace, for example) pass through as-is.
// A missing log file is not an error; it simply has no lines yet.
package logtail
