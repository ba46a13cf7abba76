package gallery

import (
	"path"
	"strings"
)

// baseTokens is how many leading hyphen-separated tokens make up a base
// identity: "image-0048" out of "image-0048-ab12cd.jpg".
const baseTokens = 2

// BaseIdentity returns the matching key of an image or overlay file name
// (or URL): the extension is dropped and only the first two hyphen-delimited
// tokens are kept, discarding hash or variant suffixes.
func BaseIdentity(name string) string {
	name = path.Base(name)
	name = strings.TrimSuffix(name, path.Ext(name))
	tokens := strings.SplitN(name, "-", baseTokens+1)
	if len(tokens) > baseTokens {
		tokens = tokens[:baseTokens]
	}
	return strings.Join(tokens, "-")
}
