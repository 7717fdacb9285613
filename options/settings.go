package options

// ABI version bounds accepted by --abi-version.
const (
	ABIVersionUnset           = -1
	OldestSupportedABIVersion = 1
	CurrentABIVersion         = 3
)

type optionalString struct {
	value string
	set   bool
}

// Settings is the typed result of parsing the launcher's argument vector.
// It is written once by the parser and read-only afterwards.
type Settings struct {
	strs  [numStringFields]optionalString
	bools [numBoolFields]bool
	enums [numEnumFields]int

	environment Environment

	serviceEnabled bool
	service        ServiceAddress
	observe        bool
	abiVersion     int
	vmOptions      []string

	script     string
	hasScript  bool
	scriptArgs []string
}

func newSettings() *Settings {
	return &Settings{abiVersion: ABIVersionUnset}
}

// GetString returns a string option and whether it was given.
// An explicit empty value ("--packages=") reports ("", true).
func (s *Settings) GetString(f StringField) (string, bool) {
	v := s.strs[f]
	return v.value, v.set
}

// GetBool returns a boolean option. Absent options are false.
func (s *Settings) GetBool(f BoolField) bool {
	return s.bools[f]
}

// GetEnum returns the ordinal stored for an enum option.
func (s *Settings) GetEnum(f EnumField) int {
	return s.enums[f]
}

func (s *Settings) PackagesFile() (string, bool)          { return s.GetString(PackagesFile) }
func (s *Settings) PackageRoot() (string, bool)           { return s.GetString(PackageRoot) }
func (s *Settings) SnapshotFilename() (string, bool)      { return s.GetString(SnapshotFilename) }
func (s *Settings) SnapshotDepsFilename() (string, bool)  { return s.GetString(SnapshotDepsFilename) }
func (s *Settings) Depfile() (string, bool)               { return s.GetString(Depfile) }
func (s *Settings) DepfileOutputFilename() (string, bool) { return s.GetString(DepfileOutputFilename) }
func (s *Settings) SharedBlobsFilename() (string, bool)   { return s.GetString(SharedBlobsFilename) }
func (s *Settings) RootCertsFile() (string, bool)         { return s.GetString(RootCertsFile) }
func (s *Settings) RootCertsCache() (string, bool)        { return s.GetString(RootCertsCache) }
func (s *Settings) Namespace() (string, bool)             { return s.GetString(Namespace) }

func (s *Settings) SaveCompilationTraceFilename() (string, bool) {
	return s.GetString(SaveCompilationTraceFilename)
}

func (s *Settings) LoadCompilationTraceFilename() (string, bool) {
	return s.GetString(LoadCompilationTraceFilename)
}

func (s *Settings) SaveTypeFeedbackFilename() (string, bool) {
	return s.GetString(SaveTypeFeedbackFilename)
}

func (s *Settings) LoadTypeFeedbackFilename() (string, bool) {
	return s.GetString(LoadTypeFeedbackFilename)
}

func (s *Settings) CompileAll() bool       { return s.bools[CompileAll] }
func (s *Settings) VMServiceDevMode() bool { return s.bools[VMServiceDevMode] }
func (s *Settings) Deterministic() bool    { return s.bools[Deterministic] }
func (s *Settings) TraceLoading() bool     { return s.bools[TraceLoading] }
func (s *Settings) ShortSocketRead() bool  { return s.bools[ShortSocketRead] }
func (s *Settings) ShortSocketWrite() bool { return s.bools[ShortSocketWrite] }
func (s *Settings) ExitDisabled() bool     { return s.bools[ExitDisabled] }
func (s *Settings) SuppressCoreDump() bool { return s.bools[SuppressCoreDump] }
func (s *Settings) Verbose() bool          { return s.bools[VerboseOption] }

// PrintFlagsSeen reports --print_flags. The launcher uses it to print the
// VM flags even when no script is given.
func (s *Settings) PrintFlagsSeen() bool { return s.bools[PrintFlags] }

// VerboseDebugSeen reports --verbose_debug.
func (s *Settings) VerboseDebugSeen() bool { return s.bools[VerboseDebug] }

// PreviewDart2 is always on; the flag is accepted and ignored.
func (s *Settings) PreviewDart2() bool { return true }

// HelpRequested reports -h or --help.
func (s *Settings) HelpRequested() bool { return s.bools[HelpOption] }

// VersionRequested reports --version.
func (s *Settings) VersionRequested() bool { return s.bools[VersionOption] }

// EarlyExit reports whether the caller should print help or version and stop
// without running the script.
func (s *Settings) EarlyExit() bool {
	return s.HelpRequested() || s.VersionRequested()
}

// SnapshotKind returns the --snapshot_kind selection, none by default.
func (s *Settings) SnapshotKind() SnapshotKind {
	return SnapshotKind(s.enums[GenSnapshotKind])
}

// Environment returns the -D declarations. The result must not be modified.
func (s *Settings) Environment() *Environment {
	return &s.environment
}

// ServiceAddress returns the diagnostic service address and whether the
// service was enabled by --enable-vm-service or --observe.
func (s *Settings) ServiceAddress() (ServiceAddress, bool) {
	return s.service, s.serviceEnabled
}

// Observe reports --observe.
func (s *Settings) Observe() bool { return s.observe }

// ABIVersion returns the target ABI version or ABIVersionUnset.
func (s *Settings) ABIVersion() int { return s.abiVersion }

// VMOptions returns the VM flags implied by the parsed options, in the
// order the options were first seen.
func (s *Settings) VMOptions() []string {
	return append([]string(nil), s.vmOptions...)
}

// Script returns the script path and whether one was given.
func (s *Settings) Script() (string, bool) {
	return s.script, s.hasScript
}

// ScriptArgs returns the arguments that follow the script path, untouched.
func (s *Settings) ScriptArgs() []string {
	return append([]string(nil), s.scriptArgs...)
}

// RemainingArgs returns the script path followed by its arguments.
func (s *Settings) RemainingArgs() []string {
	if !s.hasScript {
		return nil
	}
	return append([]string{s.script}, s.scriptArgs...)
}

func (s *Settings) setScript(script string, rest []string) {
	s.script = script
	s.hasScript = true
	s.scriptArgs = append([]string(nil), rest...)
}

// The process-wide record. It starts out as all defaults and is replaced
// only by a successful ParseArguments.
var current = newSettings()

// Current returns the process-wide settings.
func Current() *Settings {
	return current
}

// ParseArguments parses args and installs the result as the process-wide
// settings. On error the previous record is left untouched.
func ParseArguments(args []string, cfg ParseConfig) (*Settings, error) {
	s, err := NewParser(cfg).Parse(args)
	if err != nil {
		return nil, err
	}
	current = s
	return s, nil
}

// Destroy releases the environment storage and resets the process-wide
// settings. No reader may hold entries from the old record.
func Destroy() {
	current.environment.Clear()
	current = newSettings()
}
