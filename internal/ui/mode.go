package ui

import (
	"net/url"
	"strings"
)

// Mode is the state of a detail page.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

const editFlag = "mode=edit"

func (m Mode) String() string {
	if m == Editing {
		return "edit"
	}
	return "view"
}

// ModeFrom reads the mode flag of a detail page URL.
func ModeFrom(q url.Values) Mode {
	for _, v := range q["mode"] {
		if v == "edit" {
			return Editing
		}
	}
	return Viewing
}

// ToggleModeURL returns u with the edit flag flipped. Entering edit mode
// appends the flag and leaving it removes every pair ModeFrom would read as
// the flag, however it is encoded. The rest of the query is kept as written.
func ToggleModeURL(u *url.URL) string {
	next := *u

	var kept []string
	removed := false
	if u.RawQuery != "" {
		for _, seg := range strings.Split(u.RawQuery, "&") {
			if isEditFlag(seg) {
				removed = true
				continue
			}
			kept = append(kept, seg)
		}
	}
	if !removed {
		kept = append(kept, editFlag)
	}

	next.RawQuery = strings.Join(kept, "&")
	next.ForceQuery = false
	return next.String()
}

// ViewURL is the view-mode address of the page at u: the edit flag is
// dropped and every other query pair is kept.
func ViewURL(u *url.URL) string {
	if ModeFrom(u.Query()) == Editing {
		return ToggleModeURL(u)
	}
	next := *u
	next.ForceQuery = false
	return next.String()
}

// isEditFlag decodes one raw query pair the way url.ParseQuery does.
func isEditFlag(seg string) bool {
	if strings.Contains(seg, ";") {
		return false
	}
	k, v, _ := strings.Cut(seg, "=")
	key, err := url.QueryUnescape(k)
	if err != nil || key != "mode" {
		return false
	}
	val, err := url.QueryUnescape(v)
	return err == nil && val == "edit"
}
