// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package gpsd acquires a one-shot position fix from a local gpsd daemon.
package gpsd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/stratoberry/go-gpsd"

	"github.com/rayfon/skycast/internal/location"
	"github.com/rayfon/skycast/internal/weather"
)

const (
	defaultHost = "localhost"
	defaultPort = "2947"

	// fixTimeout bounds how long a single Locate call waits for a 2D fix.
	fixTimeout = time.Second * 15
)

type GPSDSource struct {
	name string
	addr string
}

func New() *GPSDSource {
	return &GPSDSource{
		name: "gpsd",
		addr: net.JoinHostPort(defaultHost, defaultPort),
	}
}

func (s *GPSDSource) Name() string {
	return s.name
}

// Locate connects to gpsd and waits for the first TPV report carrying at least a
// 2D fix. go-gpsd has no Close(); the watch goroutine winds down with the process.
func (s *GPSDSource) Locate(ctx context.Context) (weather.Coordinate, error) {
	session, err := gpsd.Dial(s.addr)
	if err != nil {
		// A denied socket is a permission problem; a host without a running
		// gpsd is not, the next source in the chain should get its turn.
		if errors.Is(err, os.ErrPermission) {
			return weather.Coordinate{}, fmt.Errorf("%w: access to gpsd at %q denied: %s",
				location.ErrNoPermission, s.addr, err)
		}
		return weather.Coordinate{}, fmt.Errorf("cannot reach gpsd at %q: %s: %w",
			s.addr, err, location.ErrNoLocation)
	}

	fix := make(chan weather.Coordinate, 1)
	session.AddFilter("TPV", func(r interface{}) {
		tpv, ok := r.(*gpsd.TPVReport)
		if !ok {
			return
		}
		if tpv.Mode < gpsd.Mode2D {
			return
		}
		select {
		case fix <- weather.Coordinate{Lat: tpv.Lat, Lon: tpv.Lon}:
		default:
		}
	})
	done := session.Watch()

	ctx, cancel := context.WithTimeout(ctx, fixTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		return weather.Coordinate{}, fmt.Errorf("gpsd produced no fix in time: %w", location.ErrNoLocation)
	case <-done:
		return weather.Coordinate{}, fmt.Errorf("gpsd connection ended before a fix: %w", location.ErrNoLocation)
	case coords := <-fix:
		return coords, nil
	}
}
