// Package ftp wraps the landing-zone FTP connection with the few operations
// the watch trigger and the archive step need.
package ftp

import (
	"fmt"
	"path"
	"strings"

	"github.com/jlaffaye/ftp"
)

// FileInfo describes a remote file seen during a poll.
type FileInfo struct {
	Name string
	Size int64
}

// Client is a logged-in FTP connection.
type Client struct {
	conn *ftp.ServerConn
}

// Connect dials the server and logs in.
func Connect(host string, port int, user, password string, useTLS bool) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	var opts []ftp.DialOption
	if useTLS {
		opts = append(opts, ftp.DialWithExplicitTLS(nil))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	if err := conn.Login(user, password); err != nil {
		conn.Quit()
		return nil, fmt.Errorf("login as %q: %w", user, err)
	}

	return &Client{conn: conn}, nil
}

// Close gracefully terminates the connection.
func (c *Client) Close() error {
	return c.conn.Quit()
}

// List returns regular files in dir whose names match the glob pattern.
func (c *Client) List(dir, pattern string) ([]FileInfo, error) {
	entries, err := c.conn.List(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.Type != ftp.EntryTypeFile {
			continue
		}
		if matched, _ := MatchGlob(pattern, entry.Name); matched {
			files = append(files, FileInfo{
				Name: entry.Name,
				Size: int64(entry.Size),
			})
		}
	}
	return files, nil
}

// Move renames a file on the server (RNFR/RNTO).
func (c *Client) Move(oldPath, newPath string) error {
	if err := c.conn.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("moving %q to %q: %w", oldPath, newPath, err)
	}
	return nil
}

// MkdirAll creates the directory and all parents on the server.
func (c *Client) MkdirAll(dir string) error {
	current := ""
	for _, part := range strings.Split(path.Clean(dir), "/") {
		if part == "" || part == "." {
			continue
		}
		if current == "" && strings.HasPrefix(dir, "/") {
			current = "/" + part
		} else if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}
		// Attempt mkdir; ignore error if dir already exists
		c.conn.MakeDir(current)
	}
	return nil
}

// MatchGlob matches a filename against a glob pattern.
// Exported for testability.
func MatchGlob(pattern, name string) (bool, error) {
	return path.Match(pattern, name)
}
