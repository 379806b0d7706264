package cardtype

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joeblew999/plat-titlecard/pkg/log"
)

// Install copies a style package from srcDir into the card type
// directory under the manifest's identifier, making it discoverable on
// the next Discover. The source package is validated first; an already
// installed identifier is only replaced when force is set.
func Install(srcDir, cardTypeDir string, force bool) (*Style, error) {
	m, err := LoadManifest(filepath.Join(srcDir, ManifestFilename))
	if err != nil {
		return nil, err
	}
	src := &Style{Manifest: *m, Dir: srcDir}
	for _, l := range Layers() {
		if _, err := os.Stat(src.FontPath(l)); err != nil {
			return nil, fmt.Errorf("%s layer font %s: %w", l, m.Fonts.For(l), err)
		}
	}

	dest := filepath.Join(cardTypeDir, m.Identifier)
	if _, err := os.Stat(dest); err == nil {
		if !force {
			return nil, fmt.Errorf("card type %q already installed at %s", m.Identifier, dest)
		}
		if err := os.RemoveAll(dest); err != nil {
			return nil, fmt.Errorf("failed to replace card type %q: %w", m.Identifier, err)
		}
	}
	if err := copyTree(srcDir, dest); err != nil {
		return nil, fmt.Errorf("failed to install card type %q: %w", m.Identifier, err)
	}

	log.Info("installed card type", "identifier", m.Identifier, "dir", dest)
	return &Style{Manifest: *m, Dir: dest}, nil
}

// copyTree copies a directory tree, regular files only.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
