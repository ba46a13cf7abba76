// Package manifest enumerates an image root into the flat list of
// path/content bindings the gallery indexer consumes.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/ziadkadry99/casegallery/internal/progress"
)

// AssetPrefix is the URL prefix under which manifest files are served.
const AssetPrefix = "/assets/"

// hashLen is the number of hex digits of the content hash kept in URLs.
const hashLen = 8

// Entry is one discovered file.
type Entry struct {
	Path    string // Slash-separated path relative to the manifest root.
	URL     string // Content-addressed asset URL.
	AbsPath string // Location on disk; empty for in-memory manifests.
	Data    []byte // Content of in-memory entries; nil when AbsPath is set.
	Size    int64
	Hash    string // Full SHA-256 hex digest of the content.
	Text    string // File content, only populated for text notes.
}

// Open returns the entry's content.
func (e Entry) Open() ([]byte, error) {
	if e.AbsPath == "" {
		return e.Data, nil
	}
	b, err := os.ReadFile(e.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", e.Path, err)
	}
	return b, nil
}

// Config controls the behaviour of Walk.
type Config struct {
	Root       string   // Manifest root directory.
	Extensions []string // Image extensions, with leading dot.
	Exclude    []string // Extra glob patterns to skip.
}

// Walk traverses cfg.Root and returns an entry for every image and text note
// below it, in natural path order. Unreadable entries are skipped.
func Walk(cfg Config, rep progress.Reporter) ([]Entry, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve root: %w", err)
	}
	if fi, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("manifest: stat root: %w", err)
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("manifest: root %s is not a directory", root)
	}
	if rep == nil {
		rep = progress.Nop{}
	}

	include := IncludePatterns(cfg.Extensions)

	var rels []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}
		if d.IsDir() {
			if p != root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !MatchesInclude(rel, include) || MatchesExclude(rel, cfg.Exclude) {
			return nil
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("manifest: traversal: %w", err)
	}

	SortPaths(rels)

	rep.Start(len(rels))
	entries := make([]Entry, 0, len(rels))
	for i, rel := range rels {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		e, err := readEntry(rel, abs)
		if err != nil {
			rep.Update(i+1, "skipped "+rel)
			continue
		}
		entries = append(entries, e)
		rep.Update(i+1, rel)
	}
	rep.Finish()

	return entries, nil
}

func readEntry(rel, abs string) (Entry, error) {
	f, err := os.Open(abs)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()

	e := Entry{Path: rel, AbsPath: abs}
	h := sha256.New()
	var w io.Writer = h
	var text strings.Builder
	if isText(rel) {
		w = io.MultiWriter(h, &text)
	}
	n, err := io.Copy(w, f)
	if err != nil {
		return Entry{}, err
	}
	e.Size = n
	e.Hash = hex.EncodeToString(h.Sum(nil))
	e.Text = text.String()
	e.URL = AssetURL(rel, e.Hash)
	return e, nil
}

// FromFiles builds a manifest from in-memory path→content bindings, the way
// an embedded asset bundle would supply them. Paths are slash-separated and
// relative to the manifest root.
func FromFiles(files map[string][]byte) []Entry {
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, p)
	}
	SortPaths(rels)

	entries := make([]Entry, 0, len(rels))
	for _, rel := range rels {
		data := files[rel]
		sum := sha256.Sum256(data)
		e := Entry{
			Path: rel,
			Data: data,
			Size: int64(len(data)),
			Hash: hex.EncodeToString(sum[:]),
		}
		if isText(rel) {
			e.Text = string(data)
		}
		e.URL = AssetURL(rel, e.Hash)
		entries = append(entries, e)
	}
	return entries
}

// AssetURL returns the served URL for a manifest path: the file name gets a
// short content hash appended before its extension, so
// "M3/image-0001.jpg" becomes "/assets/M3/image-0001-1a2b3c4d.jpg".
func AssetURL(rel, hash string) string {
	dir, name := path.Split(rel)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if len(hash) > hashLen {
		hash = hash[:hashLen]
	}
	if hash != "" {
		stem += "-" + hash
	}
	return AssetPrefix + dir + stem + ext
}

// SortPaths orders paths naturally ("image-2" before "image-10") in place.
func SortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool { return natural.Less(paths[i], paths[j]) })
}

func isText(rel string) bool {
	return strings.EqualFold(path.Ext(rel), ".txt")
}
