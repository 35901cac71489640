// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/recordstream/fault"
)

// WatcherLoggerPrefix - logger channel for the configuration watcher
const WatcherLoggerPrefix = "config-watcher"

// Watcher - keeps the current configuration in step with the file
type Watcher struct {
	sync.RWMutex

	log      *logger.L
	watcher  *fsnotify.Watcher
	fileName string
	current  *Configuration
	change   chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	started  bool
}

// NewWatcher - load the configuration and prepare to follow changes to it
func NewWatcher(fileName string, log *logger.L) (*Watcher, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	current, err := Load(fileName)
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, errors.Wrap(err, "new watcher")
	}

	return &Watcher{
		log:      log,
		watcher:  watcher,
		fileName: fileName,
		current:  current,
		change:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Current - snapshot of the configuration the next block should use
func (w *Watcher) Current() *Configuration {
	w.RLock()
	defer w.RUnlock()
	return w.current
}

// Changed - signalled after each successful reload
func (w *Watcher) Changed() <-chan struct{} {
	return w.change
}

// Reload - read the file again; on failure the previous configuration
// is kept
func (w *Watcher) Reload() error {
	c, err := Load(w.fileName)
	if nil != err {
		w.log.Errorf("reload: %q  error: %s", w.fileName, err)
		return err
	}

	w.Lock()
	w.current = c
	w.Unlock()

	w.log.Infof("reloaded: %q", w.fileName)
	w.sendEvent()
	return nil
}

// Start - watch the directory holding the file so that editors which
// replace the file are still seen
func (w *Watcher) Start() error {
	if w.started {
		return fault.ErrAlreadyInitialised
	}

	directory := filepath.Dir(w.fileName)
	if err := w.watcher.Add(directory); nil != err {
		w.log.Errorf("watcher add: %q  error: %s", directory, err)
		return err
	}
	w.started = true

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop - end the watch loop and release the watcher
func (w *Watcher) Stop() error {
	if w.started {
		close(w.done)
		w.wg.Wait()
		w.started = false
	}
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	base := filepath.Base(w.fileName)
loop:
	for {
		select {
		case <-w.done:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != base {
				continue loop
			}
			w.log.Debugf("file event: %v", event)

			if watcherEventFileRemove(event) {
				w.log.Warnf("file: %q removed, keeping current configuration", w.fileName)
				continue loop
			}
			if watcherEventFileChange(event) {
				_ = w.Reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
	w.log.Info("stopped")
}

func (w *Watcher) sendEvent() {
	select {
	case w.change <- struct{}{}:
	default:
		w.log.Debugf("change channel full, discard event")
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
