package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHOptions configures the ssh downloader. Without a known-hosts file the
// host key is not verified.
type SSHOptions struct {
	// User applies when the URL carries no user@ prefix.
	User           string `json:"user"`
	Password       string `json:"password"`
	KeyFile        string `json:"key_file"`
	KnownHostsFile string `json:"known_hosts_file"`
	TimeoutMS      int    `json:"timeout_ms"`
}

func (o SSHOptions) timeout() time.Duration {
	if o.TimeoutMS > 0 {
		return time.Duration(o.TimeoutMS) * time.Millisecond
	}
	return 10 * time.Second
}

// SSHDownloader reads ssh://user@host:port/path by streaming the remote file
// through an ssh session.
func SSHDownloader(opts SSHOptions) Downloader {
	return func(_ context.Context, u *URL) (io.ReadCloser, error) {
		user, addr := splitUserHost(u.Host)
		if user == "" {
			user = opts.User
		}
		if user == "" {
			return nil, fmt.Errorf("ssh url %q has no user", u.String())
		}
		if !strings.Contains(addr, ":") {
			addr += ":22"
		}
		if u.Path == "" {
			return nil, fmt.Errorf("ssh url %q has no path", u.String())
		}

		var auth []ssh.AuthMethod
		if opts.KeyFile != "" {
			key, err := os.ReadFile(opts.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("read key: %w", err)
			}
			signer, err := ssh.ParsePrivateKey(key)
			if err != nil {
				return nil, fmt.Errorf("parse key: %w", err)
			}
			auth = append(auth, ssh.PublicKeys(signer))
		}
		if opts.Password != "" {
			auth = append(auth, ssh.Password(opts.Password))
		}
		if len(auth) == 0 {
			return nil, fmt.Errorf("ssh url %q: no key file or password configured", u.String())
		}

		hostKeys := ssh.InsecureIgnoreHostKey() //nolint:gosec // opt-in via KnownHostsFile
		if opts.KnownHostsFile != "" {
			cb, err := knownhosts.New(opts.KnownHostsFile)
			if err != nil {
				return nil, fmt.Errorf("load known hosts: %w", err)
			}
			hostKeys = cb
		}

		client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
			User:            user,
			Auth:            auth,
			HostKeyCallback: hostKeys,
			Timeout:         opts.timeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", addr, err)
		}
		defer client.Close()

		session, err := client.NewSession()
		if err != nil {
			return nil, err
		}
		defer session.Close()

		out, err := session.Output("cat " + shellQuote(u.Path))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", u.Path, err)
		}
		return io.NopCloser(bytes.NewReader(out)), nil
	}
}

func splitUserHost(host string) (user, addr string) {
	if i := strings.LastIndex(host, "@"); i >= 0 {
		return host[:i], host[i+1:]
	}
	return "", host
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
