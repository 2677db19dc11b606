package intake

import "time"

// SetNow pins the service clock for tests in the intake_test package.
func SetNow(s *Service, now func() time.Time) {
	s.now = now
}
