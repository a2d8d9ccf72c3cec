// Package archive scans the recording archive and drives batch presenter
// analysis. The archive is laid out as YYYY/MM/*.mp3 under a single base
// directory; recording filenames carry broadcast metadata (edition, UTC
// time, receiver host, signal average).
package archive
