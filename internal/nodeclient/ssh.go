/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodeclient

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
	"k8s.io/klog/v2"

	"github.com/fleetoss/fleetd/internal/cluster"
	"github.com/fleetoss/fleetd/internal/hashutil"
	"github.com/fleetoss/fleetd/internal/inventory"
	"github.com/fleetoss/fleetd/internal/orcherr"
)

// DefaultDialTimeout bounds how long a single SSH handshake is allowed to
// take before the node is declared unreachable.
const DefaultDialTimeout = 5 * time.Second

// remotePrefix is where manifests and cache files land on the remote host.
const remotePrefix = "/var/lib/fleetd"

// SSHClient is the production Client: one persistent SSH connection per
// node, new session per command (matches how the teacher's resource-manager
// shells out to remote hosts — one connection, short-lived sessions).
type SSHClient struct {
	nodeName string
	addr     string
	conn     *ssh.Client
}

var _ Client = (*SSHClient)(nil)

// DialNode opens an SSH connection to a single node using its resolved
// user/key from the cluster config. ctx's deadline (if any) bounds the dial;
// otherwise DefaultDialTimeout applies.
func DialNode(ctx context.Context, c *cluster.Cluster, n cluster.Node) (*SSHClient, error) {
	user := c.ResolvedUser(n)
	keyPath := c.ResolvedKey(n)

	var authMethods []ssh.AuthMethod
	if keyPath != "" {
		signer, err := loadSigner(keyPath)
		if err != nil {
			return nil, &orcherr.Unreachable{Node: n.Name, Err: errors.Wrapf(err, "loading key %s", keyPath)}
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	timeout := DefaultDialTimeout
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	port := n.Port
	if port == 0 {
		port = 22
	}
	addr := net.JoinHostPort(n.Host, fmt.Sprintf("%d", port))

	clientConfig := &ssh.ClientConfig{
		User:            user,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // fleet nodes are pre-enrolled, not verified via known_hosts here
		Timeout:         timeout,
	}

	conn, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return nil, &orcherr.Unreachable{Node: n.Name, Err: err}
	}
	klog.V(4).Infof("connected to node %s (%s)", n.Name, addr)
	return &SSHClient{nodeName: n.Name, addr: addr, conn: conn}, nil
}

func loadSigner(path string) (ssh.Signer, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading key file %s", path)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}
	return signer, nil
}

func (c *SSHClient) NodeName() string { return c.nodeName }

func (c *SSHClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// runCommand executes cmd in a fresh session and returns separated
// stdout/stderr. A nonzero exit becomes an *orcherr.AgentError.
func (c *SSHClient) runCommand(ctx context.Context, cmd string) (string, string, error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return "", "", &orcherr.Unreachable{Node: c.nodeName, Err: errors.Wrap(err, "opening ssh session")}
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(cmd) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return stdout.String(), stderr.String(), &orcherr.Unreachable{Node: c.nodeName, Err: ctx.Err()}
	case err := <-done:
		if err != nil {
			exitCode := -1
			if ee, ok := err.(*ssh.ExitError); ok {
				exitCode = ee.ExitStatus()
			}
			return stdout.String(), stderr.String(), &orcherr.AgentError{
				Node:     c.nodeName,
				ExitCode: exitCode,
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return stdout.String(), stderr.String(), nil
	}
}

func (c *SSHClient) Execute(ctx context.Context, cmd string) (string, error) {
	stdout, _, err := c.runCommand(ctx, cmd)
	return stdout, err
}

func (c *SSHClient) NodeSystemInfo(ctx context.Context) (*inventory.NodeSystemInfo, error) {
	hostnameOut, _, err := c.runCommand(ctx, "hostname")
	if err != nil {
		return nil, err
	}
	archOut, _, err := c.runCommand(ctx, "uname -m")
	if err != nil {
		return nil, err
	}
	osOut, _, err := c.runCommand(ctx, "uname -s")
	if err != nil {
		return nil, err
	}
	distOut, _, _ := c.runCommand(ctx, ". /etc/os-release 2>/dev/null && echo $ID")

	agentVerOut, _, agentErr := c.runCommand(ctx, "fleetd-agent --version")
	engineVerOut, _, engineErr := c.runCommand(ctx, "fleetd-engine --version")

	var snapshot *inventory.SystemInfo
	var snapErr error
	if agentErr == nil {
		raw, _, err := c.runCommand(ctx, "fleetd-agent system info --json")
		if err != nil {
			snapErr = err
		} else {
			snapshot, snapErr = parseSystemInfo([]byte(raw))
		}
	}

	info := &inventory.NodeSystemInfo{
		Hostname: strings.TrimSpace(hostnameOut),
		Platform: inventory.Platform{
			Arch:         strings.TrimSpace(archOut),
			OS:           strings.TrimSpace(osOut),
			Distribution: strings.TrimSpace(distOut),
		},
		AgentVersion:  strings.TrimSpace(agentVerOut),
		EngineVersion: strings.TrimSpace(engineVerOut),
		System:        snapshot,
	}

	if classifyErr := classifyInfoError(c.nodeName, info.AgentVersion, engineErr == nil, snapErr); classifyErr != nil {
		return info, classifyErr
	}
	return info, nil
}

func (c *SSHClient) ApplyManifest(ctx context.Context, yaml string) (string, string, error) {
	remotePath := fmt.Sprintf("%s/incoming-%s.yaml", remotePrefix, hexSuffix(yaml))
	writeCmd := fmt.Sprintf("mkdir -p %s && cat > %s", remotePrefix, remotePath)
	if _, _, err := c.runPiped(ctx, writeCmd, yaml); err != nil {
		return "", "", err
	}
	return c.runCommand(ctx, fmt.Sprintf("fleetd-agent apply -f %s", remotePath))
}

func (c *SSHClient) RemoveManifest(ctx context.Context, yaml string, graceSeconds int) (string, string, error) {
	remotePath := fmt.Sprintf("%s/removing-%s.yaml", remotePrefix, hexSuffix(yaml))
	writeCmd := fmt.Sprintf("mkdir -p %s && cat > %s", remotePrefix, remotePath)
	if _, _, err := c.runPiped(ctx, writeCmd, yaml); err != nil {
		return "", "", err
	}
	cmd := fmt.Sprintf("fleetd-agent delete -f %s", remotePath)
	if graceSeconds >= 0 {
		cmd = fmt.Sprintf("%s --grace-period=%d", cmd, graceSeconds)
	}
	return c.runCommand(ctx, cmd)
}

// runPiped runs cmd with stdin set to body, used to ship manifest content
// over the existing connection without a separate SFTP/SCP subsystem.
func (c *SSHClient) runPiped(ctx context.Context, cmd, body string) (string, string, error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return "", "", &orcherr.Unreachable{Node: c.nodeName, Err: errors.Wrap(err, "opening ssh session")}
	}
	defer session.Close()

	session.Stdin = strings.NewReader(body)
	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(cmd) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return stdout.String(), stderr.String(), &orcherr.Unreachable{Node: c.nodeName, Err: ctx.Err()}
	case err := <-done:
		if err != nil {
			return stdout.String(), stderr.String(), &orcherr.AgentError{Node: c.nodeName, Stderr: strings.TrimSpace(stderr.String())}
		}
		return stdout.String(), stderr.String(), nil
	}
}

func hexSuffix(s string) string {
	return hashutil.Hex([]byte(s))[:8]
}
