package storage

import "fmt"

func fingerprintKey(scope string) string {
	return "deploy:" + scope
}

// Fingerprint returns the fingerprint of the last command set deployed to
// scope, or "" if none was recorded.
func (s *Storage) Fingerprint(scope string) (string, error) {
	var fp string
	if _, err := s.ds.Get(fingerprintKey(scope), &fp); err != nil {
		return "", fmt.Errorf("error reading fingerprint for %s: %w", scope, err)
	}
	return fp, nil
}

func (s *Storage) SetFingerprint(scope, fp string) error {
	return s.ds.Set(fingerprintKey(scope), fp)
}

func (s *Storage) ClearFingerprint(scope string) error {
	return s.ds.Delete(fingerprintKey(scope))
}
