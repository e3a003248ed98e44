// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// blueprintWatcher - change notifications for a blueprint file or the
// files of a blueprint directory
type blueprintWatcher struct {
	log     *logger.L
	watcher *fsnotify.Watcher
	path    string
	change  chan<- struct{}
	remove  chan<- struct{}
	done    chan struct{}
}

func newBlueprintWatcher(target string, change chan<- struct{}, remove chan<- struct{}) (*blueprintWatcher, error) {
	log := logger.New("watcher")

	path, err := filepath.Abs(filepath.Clean(target))
	if nil != err {
		return nil, err
	}
	if _, err := os.Stat(path); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}
	err = watcher.Add(path)
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		watcher.Close()
		return nil, err
	}

	w := &blueprintWatcher{
		log:     log,
		watcher: watcher,
		path:    path,
		change:  change,
		remove:  remove,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *blueprintWatcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.log.Debugf("file event: %v", event)

			if isRemove(event) && event.Name == w.path {
				w.log.Warnf("blueprint %s removed, stop", w.path)
				w.sendEvent(w.remove, "remove")
				return
			}
			if isChange(event) {
				w.sendEvent(w.change, "change")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
}

// Close - stop watching
func (w *blueprintWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

// never blocks, one pending event is enough to trigger a reload
func (w *blueprintWatcher) sendEvent(ch chan<- struct{}, name string) {
	select {
	case ch <- struct{}{}:
	default:
		w.log.Debugf("event channel %s full, discard event", name)
	}
}

func isRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
