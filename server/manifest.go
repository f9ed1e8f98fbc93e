package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"neurobeats/logger"

	"github.com/fsnotify/fsnotify"
)

// CacheRule tells installed clients how to cache a class of URLs offline.
type CacheRule struct {
	URLPattern    string `json:"urlPattern"`
	Handler       string `json:"handler"`
	CacheName     string `json:"cacheName"`
	MaxEntries    int    `json:"maxEntries"`
	MaxAgeSeconds int    `json:"maxAgeSeconds"`
}

type cacheRulesFile struct {
	Rules []CacheRule `json:"rules"`
}

// ManifestService serves the installable-app manifest and the runtime cache
// rules from files under the web directory, reloading them when the files
// change on disk.
type ManifestService struct {
	manifestPath string
	rulesPath    string

	mu       sync.RWMutex
	manifest []byte
	rules    []CacheRule

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewManifestService loads both files and starts watching their directory.
func NewManifestService(webDir string) (*ManifestService, error) {
	s := &ManifestService{
		manifestPath: filepath.Join(webDir, "manifest.webmanifest"),
		rulesPath:    filepath.Join(webDir, "cache-rules.json"),
		done:         make(chan struct{}),
	}
	if err := s.reloadManifest(); err != nil {
		return nil, err
	}
	if err := s.reloadRules(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(webDir); err != nil {
		watcher.Close()
		return nil, err
	}
	s.watcher = watcher

	go s.watchLoop()
	return s, nil
}

// Close stops the file watcher.
func (s *ManifestService) Close() error {
	close(s.done)
	return s.watcher.Close()
}

func (s *ManifestService) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			switch filepath.Base(event.Name) {
			case filepath.Base(s.manifestPath):
				if err := s.reloadManifest(); err != nil {
					logger.Warn("manifest reload failed", logger.ErrorField(err))
				} else {
					logger.Info("manifest reloaded", logger.String("path", s.manifestPath))
				}
			case filepath.Base(s.rulesPath):
				if err := s.reloadRules(); err != nil {
					logger.Warn("cache rules reload failed", logger.ErrorField(err))
				} else {
					logger.Info("cache rules reloaded", logger.String("path", s.rulesPath))
				}
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("manifest watcher error", logger.ErrorField(err))
		case <-s.done:
			return
		}
	}
}

// reloadManifest keeps the previous manifest when the new file is invalid.
func (s *ManifestService) reloadManifest() error {
	data, err := os.ReadFile(s.manifestPath)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("manifest %s is not valid JSON", s.manifestPath)
	}
	s.mu.Lock()
	s.manifest = data
	s.mu.Unlock()
	return nil
}

func (s *ManifestService) reloadRules() error {
	data, err := os.ReadFile(s.rulesPath)
	if err != nil {
		return err
	}
	var parsed cacheRulesFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = parsed.Rules
	s.mu.Unlock()
	return nil
}

// Rules returns the current cache rule set.
func (s *ManifestService) Rules() []CacheRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CacheRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// ManifestHandler serves the raw manifest document.
func (s *ManifestService) ManifestHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := s.manifest
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/manifest+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// CacheRulesHandler serves the runtime cache rules as JSON.
func (s *ManifestService) CacheRulesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rules": s.Rules(),
	})
}
