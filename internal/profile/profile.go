package profile

import (
	"sort"

	"github.com/AnyUserName/imgconv/internal/encoder"
)

// Profile is a named starting point for the export form.
type Profile struct {
	Name        string
	Description string
	Format      encoder.Format
	Quality     int   // 1-100, JPEG only
	IconSizes   []int // ICO only
}

// DefaultName is the preset used when none is requested.
const DefaultName = "original"

// Built-in profiles.
var profiles = map[string]Profile{
	"original": {
		Name:        "original",
		Description: "JPEG at full quality",
		Format:      encoder.JPEG,
		Quality:     100,
	},
	"web": {
		Name:        "web",
		Description: "JPEG tuned for web pages",
		Format:      encoder.JPEG,
		Quality:     82,
	},
	"compact": {
		Name:        "compact",
		Description: "small JPEG for chat and email",
		Format:      encoder.JPEG,
		Quality:     60,
	},
	"lossless": {
		Name:        "lossless",
		Description: "PNG, pixels and transparency kept exactly",
		Format:      encoder.PNG,
		Quality:     100,
	},
	"gif": {
		Name:        "gif",
		Description: "GIF, reduced to 256 colours",
		Format:      encoder.GIF,
		Quality:     100,
	},
	"icon": {
		Name:        "icon",
		Description: "ICO with one 32x32 entry",
		Format:      encoder.ICO,
		Quality:     100,
		IconSizes:   []int{32},
	},
	"favicon": {
		Name:        "favicon",
		Description: "ICO with 16, 32 and 48 px entries",
		Format:      encoder.ICO,
		Quality:     100,
		IconSizes:   []int{16, 32, 48},
	},
}

// Get returns a profile by name. Falls back to "original" if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p.clone()
	}
	p := profiles[DefaultName].clone()
	p.Name = name // preserve requested name
	return p
}

// Lookup returns a profile and whether name is a built-in one.
func Lookup(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p.clone(), ok
}

// Names returns all built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns the first profile, in name order, whose format is f.
func ForFormat(f encoder.Format) (Profile, bool) {
	for _, n := range Names() {
		if profiles[n].Format == f {
			return profiles[n].clone(), true
		}
	}
	return Profile{}, false
}

func (p Profile) clone() Profile {
	if p.IconSizes != nil {
		p.IconSizes = append([]int(nil), p.IconSizes...)
	}
	return p
}
