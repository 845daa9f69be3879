package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// RetentionPolicy controls session cleanup.
type RetentionPolicy struct {
	KeepLast int
	KeepDays int
}

// PruneResult summarizes a prune operation.
type PruneResult struct {
	Considered int
	Kept       int
	Deleted    int
	Skipped    int
}

// PruneSessions deletes old session records and their report files.
// Running sessions are always kept.
func (s *Store) PruneSessions(ctx context.Context, policy RetentionPolicy, dryRun bool) (PruneResult, error) {
	if policy.KeepLast <= 0 && policy.KeepDays <= 0 {
		return PruneResult{}, nil
	}
	cutoff := time.Time{}
	if policy.KeepDays > 0 {
		cutoff = s.now().Add(-time.Duration(policy.KeepDays) * 24 * time.Hour)
	}
	sessions, err := s.ListSessions(ctx, 0)
	if err != nil {
		return PruneResult{}, err
	}

	res := PruneResult{Considered: len(sessions)}
	for idx, rec := range sessions {
		keep := rec.Status == StatusRunning
		if !keep && policy.KeepLast > 0 && idx < policy.KeepLast {
			keep = true
		}
		if !keep && policy.KeepDays > 0 {
			createdAt, parseErr := time.Parse(time.RFC3339Nano, rec.CreatedAt)
			if parseErr != nil || createdAt.After(cutoff) {
				keep = true
			}
		}
		if keep {
			res.Kept++
			continue
		}
		if dryRun {
			res.Deleted++
			continue
		}
		if rec.ReportPath != "" {
			if err := os.Remove(rec.ReportPath); err != nil && !os.IsNotExist(err) {
				log.Warn().Err(err).Str("session_id", rec.SessionID).Str("path", rec.ReportPath).Msg("keep session: report not removable")
				res.Skipped++
				continue
			}
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id=?`, rec.SessionID); err != nil {
			return res, fmt.Errorf("delete session %s: %w", rec.SessionID, err)
		}
		res.Deleted++
	}
	return res, nil
}
