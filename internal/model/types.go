// Package model defines shared data structures.
package model

import "time"

// Config defines settings for one player's game.
type Config struct {
	Duration time.Duration
	Sequence []string
	Confetti bool
}

// ServeConfig defines settings for hosting the game over SSH.
type ServeConfig struct {
	Host        string
	Port        int
	HostKeyPath string
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level string
	File  string
}
