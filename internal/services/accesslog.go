package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mssola/user_agent"
)

// AccessEntry describes one shortcut resolution. UserID is nil for guests.
type AccessEntry struct {
	Time      time.Time
	Link      string
	UserID    *uint
	ClientIP  string
	UserAgent string
}

// AccessLogger appends one human-readable line per shortcut access to a
// dedicated log file. Entries are queued on a channel and written by a
// background worker; when the queue is full the entry is dropped rather
// than delaying the redirect.
type AccessLogger struct {
	file    *os.File
	geoIP   *GeoIPService
	logger  *slog.Logger
	entries chan AccessEntry
}

func NewAccessLogger(path string, geoIP *GeoIPService, logger *slog.Logger) (*AccessLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create access log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open access log: %w", err)
	}

	return &AccessLogger{
		file:    file,
		geoIP:   geoIP,
		logger:  logger,
		entries: make(chan AccessEntry, 100),
	}, nil
}

func (l *AccessLogger) Start(ctx context.Context) {
	l.logger.Info("Access log worker starting")
	for {
		select {
		case entry := <-l.entries:
			l.write(entry)
		case <-ctx.Done():
			l.logger.Info("Access log worker stopping")
			return
		}
	}
}

// Log enqueues an entry without blocking the caller.
func (l *AccessLogger) Log(entry AccessEntry) {
	select {
	case l.entries <- entry:
	default:
		l.logger.Warn("Access log channel full, dropping entry", "link", entry.Link)
	}
}

func (l *AccessLogger) Close() error {
	return l.file.Close()
}

func (l *AccessLogger) write(entry AccessEntry) {
	principal := "Guest"
	if entry.UserID != nil {
		principal = strconv.FormatUint(uint64(*entry.UserID), 10)
	}

	country := "Unknown"
	if l.geoIP != nil {
		country = l.geoIP.GetCountry(entry.ClientIP)
	}

	line := fmt.Sprintf("Access time: %s | Accessed link: %s | User ID: %s | Client IP: %s | Country: %s | User agent: %s\n",
		entry.Time.Format(time.RFC3339), entry.Link, principal, entry.ClientIP, country, entry.UserAgent)

	if _, err := l.file.WriteString(line); err != nil {
		l.logger.Error("Failed to write access log line", "error", err)
		return
	}

	ua := user_agent.New(entry.UserAgent)
	browser, version := ua.Browser()
	l.logger.Debug("Access logged",
		"link", entry.Link,
		"user", principal,
		"country", country,
		"browser", browser+" "+version,
		"os", ua.OS(),
		"bot", ua.Bot(),
	)
}
