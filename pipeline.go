package minipng

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/minipng/image"
)

const scanWorkers = 10

var extensions = map[string]struct{}{
	".mpng":    {},
	".minipng": {},
}

type scanned struct {
	file  string
	image *image.Image
}

func (m *MiniPNG) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, nil, &FileError{Op: "read", Path: base, Err: err}
	}
	if !info.IsDir() {
		return nil, nil, errors.New("not a directory")
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := extensions[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *MiniPNG) decodeWorker(ctx context.Context, in <-chan string, out chan<- scanned, wg *sync.WaitGroup) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for file := range in {
			b, err := ReadFile(file)
			if err != nil {
				errc <- err
				return
			}

			img, err := image.Decode(b)
			if err != nil {
				m.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			}

			select {
			case out <- scanned{file: file, image: img}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc
}

func (m *MiniPNG) storeWorker(in <-chan scanned) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for s := range in {
			id, added, err := m.catalog.Add(s.file, s.image)
			if err != nil {
				errc <- err
				return
			}
			if added {
				m.logger.Printf("Added \"%s\" as %d\n", s.file, id)
			} else {
				m.logger.Printf("\"%s\" is a duplicate of %d\n", s.file, id)
			}
		}
	}()
	return errc
}

// waitForStages blocks until every stage has closed its error channel and
// returns the first error reported by any of them. That error also calls
// cancel so stages blocked on a send can give up.
func waitForStages(cancel context.CancelFunc, errcs ...<-chan error) error {
	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	wg.Add(len(errcs))
	for _, errc := range errcs {
		go func(errc <-chan error) {
			defer wg.Done()
			for err := range errc {
				if err == nil {
					continue
				}
				once.Do(func() {
					first = err
					cancel()
				})
			}
		}(errc)
	}
	wg.Wait()
	return first
}

// Scan walks the directory tree rooted at path and adds every Mini-PNG file
// found to the catalog. Files that fail to decode are logged and skipped.
func (m *MiniPNG) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := m.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	images := make(chan scanned)
	var wg sync.WaitGroup
	wg.Add(scanWorkers)
	for i := 0; i < scanWorkers; i++ {
		errcList = append(errcList, m.decodeWorker(ctx, files, images, &wg))
	}
	go func() {
		wg.Wait()
		close(images)
	}()

	errcList = append(errcList, m.storeWorker(images))

	return waitForStages(cancelFunc, errcList...)
}
