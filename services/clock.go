// services/clock.go - Time source overrides for the simulator and tests
package services

import "time"

func (s *PointsService) SetClock(fn func() time.Time)      { s.now = fn }
func (s *StreakService) SetClock(fn func() time.Time)      { s.now = fn }
func (s *AchievementService) SetClock(fn func() time.Time) { s.now = fn }
func (s *RecoveryService) SetClock(fn func() time.Time)    { s.now = fn }
func (s *ReminderService) SetClock(fn func() time.Time)    { s.now = fn }
func (s *MicroWinService) SetClock(fn func() time.Time)    { s.now = fn }
