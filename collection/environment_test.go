package collection

import (
	"path"
	"testing"
)

func Environment(t *testing.T, f func(filename string)) {
	filename := path.Join(t.TempDir(), "collection")
	f(filename)
}
