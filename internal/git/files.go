// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are dependency and build directories never listed.
var skipDirs = map[string]bool{
	"node_modules": true,
	"venv":         true,
	"__pycache__":  true,
	"build":        true,
	"dist":         true,
}

// ListFiles returns every file under the checkout as slash-separated
// relative paths. The walk is top-down: a directory's files, sorted by
// name, come before its subdirectories, also sorted. Dot-prefixed and
// dependency directories are skipped. Unreadable directories are skipped.
func (c *Checkout) ListFiles() []string {
	if c.root == "" {
		return nil
	}
	var out []string
	c.walk("", &out)
	return out
}

func (c *Checkout) walk(rel string, out *[]string) {
	entries, err := os.ReadDir(filepath.Join(c.root, filepath.FromSlash(rel)))
	if err != nil {
		return
	}

	var dirs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if SkipDir(name) {
				continue
			}
			dirs = append(dirs, name)
			continue
		}
		*out = append(*out, path.Join(rel, name))
	}
	for _, d := range dirs {
		c.walk(path.Join(rel, d), out)
	}
}

// FileExists reports whether relPath names a file or directory in the
// checkout.
func (c *Checkout) FileExists(relPath string) bool {
	p, ok := c.resolve(relPath)
	if !ok {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// ReadTextFile returns the content of relPath, or "" when it cannot be
// read.
func (c *Checkout) ReadTextFile(relPath string) string {
	p, ok := c.resolve(relPath)
	if !ok {
		return ""
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	return string(data)
}

// resolve joins relPath to the root. The cleaned path never leaves it.
func (c *Checkout) resolve(relPath string) (string, bool) {
	if c.root == "" {
		return "", false
	}
	clean := path.Clean("/" + filepath.ToSlash(relPath))
	return filepath.Join(c.root, filepath.FromSlash(clean)), true
}

// SkipDir reports whether a directory with this name is left out of file
// listings.
func SkipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skipDirs[name]
}

// OrderTopDown orders slash-separated file paths the way ListFiles walks a
// directory tree, dropping paths under skipped directories. It lets other
// sources produce the same listing from a flat path list.
func OrderTopDown(paths []string) []string {
	root := &dirNode{}
	for _, p := range paths {
		root.insert(strings.Split(p, "/"))
	}
	var out []string
	root.emit("", &out)
	return out
}

type dirNode struct {
	files []string
	dirs  map[string]*dirNode
}

func (n *dirNode) insert(parts []string) {
	if len(parts) == 1 {
		n.files = append(n.files, parts[0])
		return
	}
	if SkipDir(parts[0]) {
		return
	}
	if n.dirs == nil {
		n.dirs = make(map[string]*dirNode)
	}
	child, ok := n.dirs[parts[0]]
	if !ok {
		child = &dirNode{}
		n.dirs[parts[0]] = child
	}
	child.insert(parts[1:])
}

func (n *dirNode) emit(prefix string, out *[]string) {
	sort.Strings(n.files)
	for _, f := range n.files {
		*out = append(*out, path.Join(prefix, f))
	}
	names := make([]string, 0, len(n.dirs))
	for name := range n.dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n.dirs[name].emit(path.Join(prefix, name), out)
	}
}
