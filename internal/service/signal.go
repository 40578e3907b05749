// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"os"
)

// HandleRefreshSignal forces a weather refresh whenever a signal arrives on
// sigChan, ahead of the next scheduled update.
func (s *Service) HandleRefreshSignal(ctx context.Context, sigChan chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigChan:
			s.logger.Debug("received refresh signal")
			s.refreshWeather(ctx)
		}
	}
}
