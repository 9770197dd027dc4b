package youtube

import (
	"regexp"
	"strconv"
)

var isoDurationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO-8601 duration of the form PT#H#M#S, each
// component optional, to seconds. Anything else, including day components
// and the empty string, yields 0.
func ParseDuration(iso string) int {
	m := isoDurationRE.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}

	hours, okH := component(m[1])
	minutes, okM := component(m[2])
	seconds, okS := component(m[3])
	if !okH || !okM || !okS {
		return 0
	}

	return hours*3600 + minutes*60 + seconds
}

func component(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
