package options

// Validate checks option combinations that no single option can check on
// its own. The launcher calls it after a successful parse that did not ask
// for help or version.
func (s *Settings) Validate(cfg ParseConfig) error {
	kind := s.SnapshotKind()
	if kind == SnapshotKindNone {
		return nil
	}

	if cfg.RunAppSnapshot {
		return incompatible("--snapshot_kind=%s is not supported when running from an app snapshot", kind)
	}
	if _, ok := s.SnapshotFilename(); !ok {
		return incompatible("generating a snapshot requires a filename (--snapshot)")
	}
	if _, ok := s.Script(); !ok {
		return incompatible("generating a snapshot requires a script")
	}
	return nil
}

func incompatible(format string, args ...any) *ParseError {
	err := NewParseError(ErrorTypeIncompatibleOptions, format, args...)
	err.Option = "snapshot_kind"
	return err
}
