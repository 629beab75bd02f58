package cache

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Artifact describes one cached errata database artifact: the file name stem
// and the fields every record of the source is required to carry.
type Artifact struct {
	Source string
	Fields []string
}

var (
	RHEL  = Artifact{Source: "rhel", Fields: []string{"id", "portal_publication_date", "portal_synopsis"}}
	Rocky = Artifact{Source: "rockylinux", Fields: []string{"name", "publishedAt", "synopsis"}}
	Alma  = Artifact{Source: "almalinux", Fields: []string{"updateinfo_id", "issued_date", "title"}}
)

// Path returns the cache file path for dir and release, e.g.
// <dir>/rhel-9.json, or <dir>/rhel-9.json.zst when compressed.
func (a Artifact) Path(dir string, release int, compress bool) string {
	name := fmt.Sprintf("%s-%d.json", a.Source, release)
	if compress {
		name += ".zst"
	}
	return filepath.Join(dir, name)
}

// Resolve returns the existing cache file for dir and release. When both
// the plain JSON and the zstd variant exist, the most recently modified one
// wins, so a stale leftover from toggling compression is not picked up;
// ties go to the plain variant.
func (a Artifact) Resolve(dir string, release int) (string, error) {
	var (
		found  string
		latest time.Time
	)
	for _, compress := range []bool{false, true} {
		p := a.Path(dir, release, compress)
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		if found == "" || fi.ModTime().After(latest) {
			found = p
			latest = fi.ModTime()
		}
	}
	if found == "" {
		return "", errors.Errorf("no cached file for %s release %d in %s", a.Source, release, dir)
	}
	return found, nil
}

// Validate checks whether a cached errata file is usable: it must decode as
// a non-empty JSON array whose first record carries the source's required
// fields.
func (a Artifact) Validate(path string) error {
	var records []map[string]json.RawMessage
	if err := Load(path, &records); err != nil {
		return errors.WithStack(err)
	}
	if len(records) == 0 {
		return errors.Errorf("%s contains no errata", path)
	}
	for _, field := range a.Fields {
		if _, ok := records[0][field]; !ok {
			return errors.Errorf("%s misses required field %q", path, field)
		}
	}
	return nil
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Load decodes a cached errata file into v, transparently decompressing
// zstd artifacts detected by their magic bytes.
func Load(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return errors.Wrapf(err, "new zstd reader for %s", path)
		}
		defer zr.Close()
		r = zr
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

// Store encodes v to a cache file, compressing with zstd when the path
// carries the .zst suffix.
func Store(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "mkdir %s", filepath.Dir(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	var w io.Writer = f
	var zw *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return errors.Wrapf(err, "new zstd writer for %s", path)
		}
		w = zw
	}

	e := json.NewEncoder(w)
	e.SetEscapeHTML(false)
	if err := e.Encode(v); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return errors.Wrapf(err, "close zstd writer for %s", path)
		}
	}

	return nil
}
