// Package sftpclient moves catalog files to and from an SFTP server.
package sftpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	InsecureIgnoreHostKey bool
	// KnownHostsKey is the server's public key in authorized_keys format.
	// Required when InsecureIgnoreHostKey is false.
	KnownHostsKey string
}

func (cfg Config) withDefaults() (Config, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return cfg, fmt.Errorf("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	return cfg, nil
}

func (cfg Config) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if cfg.KnownHostsKey == "" {
		return nil, fmt.Errorf("sftp: host key verification enabled but no known host key configured")
	}
	key, _, _, _, err := ssh.ParseAuthorizedKey([]byte(cfg.KnownHostsKey))
	if err != nil {
		return nil, fmt.Errorf("sftp: parse known host key: %w", err)
	}
	return ssh.FixedHostKey(key), nil
}

type session struct {
	ssh  *ssh.Client
	sftp *sftp.Client
}

func (s *session) Close() error {
	s.sftp.Close()
	return s.ssh.Close()
}

func dial(ctx context.Context, cfg Config) (*session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sftp: dial canceled: %w", err)
	}
	cb, err := cfg.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		// Close the connection if the dial still succeeds after we gave up.
		go func() {
			if r := <-ch; r.client != nil {
				r.client.Close()
			}
		}()
		return nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("sftp: new client: %w", err)
	}
	return &session{ssh: sshClient, sftp: sftpCli}, nil
}

// Upload copies localPath to RemoteDir/remoteFileName, creating RemoteDir.
func Upload(ctx context.Context, cfg Config, localPath string, remoteFileName string) error {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	s, err := dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.sftp.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", cfg.RemoteDir, err)
	}

	remotePath := path.Join(cfg.RemoteDir, remoteFileName)
	dst, err := s.sftp.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("sftp: upload copy: %w", err)
	}
	return nil
}

// Download reads a remote file fully. Relative paths resolve against RemoteDir.
func Download(ctx context.Context, cfg Config, remotePath string) ([]byte, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if !path.IsAbs(remotePath) {
		remotePath = path.Join(cfg.RemoteDir, remotePath)
	}

	s, err := dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	f, err := s.sftp.Open(remotePath)
	if err != nil {
		return nil, fmt.Errorf("sftp: open %s: %w", remotePath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("sftp: download %s: %w", remotePath, err)
	}
	return buf.Bytes(), nil
}
