package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Change describes a source file that was written, created or removed.
type Change struct {
	Path    string
	Removed bool
}

// FileWatcher keeps a project's file list in sync with the file system and reports
// each change. The callback runs on the watcher goroutine.
type FileWatcher struct {
	project  *Project
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	onChange func(Change)
}

func NewFileWatcher(p *Project, onChange func(Change)) (*FileWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FileWatcher{
		project:  p,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		onChange: onChange,
	}
	if err := w.addDirs(p.RootDir); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addDirs watches root and every non-hidden directory below it.
func (w *FileWatcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		log.Debugf("watching %s", path)
		return w.watcher.Add(path)
	})
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() error {
	close(w.stopCh)
	return w.watcher.Close()
}

func (w *FileWatcher) run() {
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch %s: %s", w.project.RootDir, err)
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addDirs(ev.Name); err != nil {
				log.Errorf("watch %s: %s", ev.Name, err)
			}
			return
		}
	}
	if !w.project.Matches(ev.Name) {
		return
	}

	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		w.project.remove(ev.Name)
		w.onChange(Change{Path: ev.Name, Removed: true})
	case ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create):
		if err := w.project.add(ev.Name); err != nil {
			log.Errorf("%s", err)
			return
		}
		w.onChange(Change{Path: ev.Name})
	}
}
