package quality

import "strings"

// Quality ranks release encodes from worst to best. The numeric order is the
// upgrade order: a higher value is always a better copy of the same episode.
type Quality int

const (
	Unknown Quality = iota
	SDTV
	DVD
	HDTV
	WEBDL
	Bluray720p
	Bluray1080p
)

var names = map[Quality]string{
	Unknown:     "unknown",
	SDTV:        "sdtv",
	DVD:         "dvd",
	HDTV:        "hdtv",
	WEBDL:       "webdl",
	Bluray720p:  "bluray720p",
	Bluray1080p: "bluray1080p",
}

var byName = func() map[string]Quality {
	set := make(map[string]Quality, len(names))
	for q, name := range names {
		set[name] = q
	}
	return set
}()

// All returns the known qualities in ascending order.
func All() []Quality {
	return []Quality{Unknown, SDTV, DVD, HDTV, WEBDL, Bluray720p, Bluray1080p}
}

func (q Quality) String() string {
	if name, ok := names[q]; ok {
		return name
	}
	return "unknown"
}

// Parse converts a quality name into a known Quality.
func Parse(value string) (Quality, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Unknown, false
	}
	q, ok := byName[normalized]
	return q, ok
}
