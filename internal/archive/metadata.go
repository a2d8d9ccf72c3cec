package archive

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// Recording filenames look like
// ShippingFCST-251203_AM_051900UTC--hostname--avg-36.mp3, optionally with a
// _processed suffix before the extension.
var filenamePattern = regexp.MustCompile(
	`(?i)ShippingFCST-(\d{6})_(AM|PM)_(\d{6})UTC--(.+?)--avg-(\d+)(?:_processed)?\.[^.]+$`)

// Metadata is the broadcast information encoded in a recording filename.
type Metadata struct {
	Broadcast    time.Time
	Edition      string
	ReceiverHost string
	SignalAvg    int
}

// ParseFilename extracts broadcast metadata from a recording filename.
// Returns an error when the name does not follow the archive convention.
func ParseFilename(name string) (Metadata, error) {
	var meta Metadata
	m := filenamePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return meta, fmt.Errorf("filename %q does not match archive naming convention", filepath.Base(name))
	}

	broadcast, err := time.Parse("060102 150405", m[1]+" "+m[3])
	if err != nil {
		return meta, fmt.Errorf("filename %q: invalid timestamp: %w", filepath.Base(name), err)
	}
	avg, err := strconv.Atoi(m[5])
	if err != nil {
		return meta, fmt.Errorf("filename %q: invalid signal average: %w", filepath.Base(name), err)
	}

	meta.Broadcast = broadcast.UTC()
	meta.Edition = m[2]
	meta.ReceiverHost = m[4]
	meta.SignalAvg = avg
	return meta, nil
}
