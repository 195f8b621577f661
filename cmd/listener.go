package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"gamecatalog/config"
)

// listenFdsStart is the first descriptor handed over by socket activation.
const listenFdsStart = 3

// listen binds PORT, or with SKIP_PORT_BIND adopts the socket the platform
// already opened for us.
func listen(cfg *config.Config) (net.Listener, error) {
	if !cfg.SkipPortBind {
		return net.Listen("tcp", ":"+cfg.Port)
	}
	return inheritedListener()
}

func inheritedListener() (net.Listener, error) {
	if pid := os.Getenv("LISTEN_PID"); pid != "" && pid != strconv.Itoa(os.Getpid()) {
		return nil, fmt.Errorf("LISTEN_PID %s does not match this process", pid)
	}

	n, err := strconv.Atoi(os.Getenv("LISTEN_FDS"))
	if err != nil || n < 1 {
		return nil, fmt.Errorf("SKIP_PORT_BIND is set but no listener was passed (LISTEN_FDS=%q)", os.Getenv("LISTEN_FDS"))
	}

	f := os.NewFile(uintptr(listenFdsStart), "listener")
	defer f.Close()

	l, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("inherited fd %d is not a listener: %w", listenFdsStart, err)
	}
	return l, nil
}
