package demo

import (
	"errors"
	"log/slog"
	"sync"
)

// AudioPlayer is the playback device driven by Playlist.
type AudioPlayer interface {
	Load(src string) error
	Play() error
	Pause()
}

// ErrNoSource is returned by Play when nothing is loaded.
var ErrNoSource = errors.New("no audio source loaded")

// MemoryPlayer is an AudioPlayer that only records what it was asked to do.
type MemoryPlayer struct {
	logger *slog.Logger

	mu      sync.Mutex
	src     string
	playing bool
	history []string
}

// NewMemoryPlayer creates a silent player.
func NewMemoryPlayer(logger *slog.Logger) *MemoryPlayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryPlayer{logger: logger}
}

// Load implements AudioPlayer. An empty src unloads.
func (p *MemoryPlayer) Load(src string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.src = src
	p.playing = false
	p.history = append(p.history, "load "+src)
	p.logger.Debug("audio load", "src", src)
	return nil
}

// Play implements AudioPlayer.
func (p *MemoryPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.src == "" {
		return ErrNoSource
	}
	p.playing = true
	p.history = append(p.history, "play")
	return nil
}

// Pause implements AudioPlayer.
func (p *MemoryPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.history = append(p.history, "pause")
	}
	p.playing = false
}

// Source returns the loaded source.
func (p *MemoryPlayer) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src
}

// Playing reports whether playback is running.
func (p *MemoryPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// History returns every recorded command.
func (p *MemoryPlayer) History() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.history...)
}
