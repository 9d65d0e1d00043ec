// Package logtail reads the end of modsnap's log file and styles it for the
// log view.
//
// Read keeps a ring buffer of maxLines entries, so it makes one pass over the
// file and uses O(maxLines) memory regardless of file size. A missing file
// yields nil, nil; other I/O errors are returned wrapped.
//
// ColorizeLine understands the line format written by hclog:
//
//	2026-10-18T09:12:01.512Z [INFO]  modsnap.store: saved snapshot: mods=3
//
// The timestamp, level, logger name and key=value field names each get a
// style from the caller's Palette. Anything else is rendered unchanged with
// the message style.
package logtail
