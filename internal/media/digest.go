package media

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

type digestResult struct {
	sum string
	err error
}

// DigestCache memoizes file content digests (uppercase hex MD5) by path.
// Entries are never evicted; a path is read at most once per cache.
type DigestCache struct {
	results map[string]digestResult
	reads   int
}

func NewDigestCache() *DigestCache {
	return &DigestCache{results: make(map[string]digestResult)}
}

// Digest returns the digest of the file at path, reading it only on the
// first request. Read failures are remembered as well.
func (c *DigestCache) Digest(path string) (string, error) {
	if r, ok := c.results[path]; ok {
		return r.sum, r.err
	}

	c.reads++
	sum, err := fileMD5(path)
	c.results[path] = digestResult{sum: sum, err: err}
	return sum, err
}

// Reads is the number of files actually hashed so far.
func (c *DigestCache) Reads() int {
	return c.reads
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}
