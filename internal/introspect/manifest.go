package introspect

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// ManifestFile is the manifest read from the project root.
const ManifestFile = "package.json"

// Entry is one key/value pair of a manifest object, in file order.
type Entry struct {
	Name  string
	Value string
}

// Manifest is the subset of package.json the document uses. A nil section
// means the key was absent; an empty non-nil section means it was an empty
// object.
type Manifest struct {
	Name            string
	Dependencies    []Entry
	DevDependencies []Entry
	Scripts         []Entry
}

// ReadManifest reads package.json from root. It reports false when the file
// is missing, unreadable or not a JSON object; callers fall back to a
// generic description.
func ReadManifest(root string) (*Manifest, bool) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, false
	}
	return ParseManifest(data)
}

// ParseManifest extracts the manifest fields from raw package.json data,
// keeping object keys in file order.
func ParseManifest(data []byte) (*Manifest, bool) {
	if !gjson.ValidBytes(data) {
		return nil, false
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, false
	}

	m := &Manifest{}
	if name := doc.Get("name"); name.Type == gjson.String {
		m.Name = name.String()
	}
	m.Dependencies = section(doc.Get("dependencies"))
	m.DevDependencies = section(doc.Get("devDependencies"))
	m.Scripts = section(doc.Get("scripts"))
	return m, true
}

func section(r gjson.Result) []Entry {
	if !r.IsObject() {
		return nil
	}
	entries := []Entry{}
	r.ForEach(func(key, value gjson.Result) bool {
		entries = append(entries, Entry{Name: key.String(), Value: value.String()})
		return true
	})
	return entries
}
