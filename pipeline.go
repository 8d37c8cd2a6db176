package gvr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/gvr/manifest"
	"github.com/bodgit/gvr/texture"
)

func (g *GVR) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (g *GVR) scanTexture(file string) (uint32, texture.Config, error) {
	crc, err := crcFile(file)
	if err != nil {
		return 0, texture.Config{}, err
	}

	f, err := os.Open(file)
	if err != nil {
		return 0, texture.Config{}, err
	}
	defer f.Close()

	config, err := texture.DecodeConfig(f)
	if err != nil {
		return 0, texture.Config{}, err
	}

	return crc, config, nil
}

func (g *GVR) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			db := manifest.New()
			if err := filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
				if info.Name()[0] == '.' {
					if info.Mode().IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				// Ignore anything that isn't a normal file
				if !info.Mode().IsRegular() {
					return nil
				}

				if filepath.Ext(file) != ".gvr" {
					return nil
				}

				// Check files are in the "top" directory
				if filepath.Dir(file) != dir {
					return nil
				}

				crc, config, err := g.scanTexture(file)
				switch {
				case err == texture.ErrInvalidFile || err == texture.ErrExternalPalette:
					// Not a usable texture, note it and move on
					g.logger.Printf("Skipping \"%s\": %v\n", file, err)
					return nil
				case err != nil:
					return err
				}

				if _, err := g.db.Add(crc, file, config); err != nil {
					return err
				}

				db.Set(crc, manifest.Entry{
					GlobalIndex: config.GlobalIndex,
					Width:       uint16(config.Width),
					Height:      uint16(config.Height),
					Format:      byte(config.DataFormat),
					Flags:       manifestFlags(config),
				})

				return nil
			}); err != nil {
				errc <- err
				return
			}

			if db.Length() > 0 {
				b, err := db.MarshalBinary()
				if err != nil {
					errc <- err
					return
				}

				f, err := os.Create(filepath.Join(dir, manifest.Filename))
				if err != nil {
					errc <- err
					return
				}
				defer f.Close()

				if _, err = f.Write(b); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func manifestFlags(c texture.Config) byte {
	var flags byte
	if c.Mipmaps {
		flags |= 0x1
	}
	if c.Palettized {
		flags |= 0x2
	}
	return flags
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path, cataloguing every GVR
// texture it finds and writing a manifest into each directory that
// contains any.
func (g *GVR) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := g.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := g.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
