package options

import (
	"fmt"
	"sort"
	"strings"
)

// Kind selects how an option's value is coerced.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindShortBool
	KindEnum
	KindCallback
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindShortBool:
		return "short-bool"
	case KindEnum:
		return "enum"
	case KindCallback:
		return "callback"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StringField identifies a string slot in Settings.
type StringField int

const (
	PackagesFile StringField = iota
	PackageRoot
	SnapshotFilename
	SnapshotDepsFilename
	Depfile
	DepfileOutputFilename
	SharedBlobsFilename
	SaveCompilationTraceFilename
	LoadCompilationTraceFilename
	SaveTypeFeedbackFilename
	LoadTypeFeedbackFilename
	RootCertsFile
	RootCertsCache
	Namespace

	numStringFields
)

// Name returns the long option name bound to f.
func (f StringField) Name() string {
	for i := range descriptors {
		if d := &descriptors[i]; d.Kind == KindString && d.Slot == int(f) {
			return d.Name
		}
	}
	return fmt.Sprintf("StringField(%d)", int(f))
}

// BoolField identifies a boolean slot in Settings.
type BoolField int

const (
	VersionOption BoolField = iota
	CompileAll
	VMServiceDevMode
	Deterministic
	TraceLoading
	ShortSocketRead
	ShortSocketWrite
	ExitDisabled
	NopOption
	SuppressCoreDump
	HelpOption
	VerboseOption
	PrintFlags
	VerboseDebug

	numBoolFields
)

// EnumField identifies an enum slot in Settings.
type EnumField int

const (
	GenSnapshotKind EnumField = iota

	numEnumFields
)

// Handler names the bespoke parser behind a callback option.
type Handler int

const (
	HandleEnvironment Handler = iota
	HandleEnableVMService
	HandleObserve
	HandleABIVersion
)

// EnumValue is one accepted spelling of an enum option.
type EnumValue struct {
	Name    string
	Ordinal int
}

// EnumSpec lists the accepted values of an enum option in display order.
type EnumSpec struct {
	Values []EnumValue
}

// Lookup returns the ordinal for name. Matching is case-sensitive.
func (s *EnumSpec) Lookup(name string) (int, bool) {
	for _, v := range s.Values {
		if v.Name == name {
			return v.Ordinal, true
		}
	}
	return 0, false
}

// Names returns the accepted spellings in declaration order.
func (s *EnumSpec) Names() []string {
	names := make([]string, len(s.Values))
	for i, v := range s.Values {
		names[i] = v.Name
	}
	return names
}

// NameOf returns the spelling for ordinal, or "" if there is none.
func (s *EnumSpec) NameOf(ordinal int) string {
	for _, v := range s.Values {
		if v.Ordinal == ordinal {
			return v.Name
		}
	}
	return ""
}

// SnapshotKind is the form of precompiled program image to produce.
type SnapshotKind int

const (
	SnapshotKindNone SnapshotKind = iota
	SnapshotKindKernel
	SnapshotKindAppJIT
)

var snapshotKinds = &EnumSpec{Values: []EnumValue{
	{Name: "none", Ordinal: int(SnapshotKindNone)},
	{Name: "kernel", Ordinal: int(SnapshotKindKernel)},
	{Name: "app-jit", Ordinal: int(SnapshotKindAppJIT)},
}}

func (k SnapshotKind) String() string {
	if name := snapshotKinds.NameOf(int(k)); name != "" {
		return name
	}
	return fmt.Sprintf("SnapshotKind(%d)", int(k))
}

// Descriptor describes one recognized option.
type Descriptor struct {
	Name    string // long name without the leading "--"
	Short   byte   // single-letter alias, 0 if none
	Kind    Kind
	Slot    int // StringField, BoolField or EnumField depending on Kind
	Enum    *EnumSpec
	Handler Handler

	Value         string // value placeholder for usage text
	OptionalValue bool   // value may be omitted (callbacks only)
	Repeatable    bool   // occurrences accumulate instead of overwriting
	Verbose       bool   // listed only in verbose usage
	Usage         string

	// VMFlag is appended to the VM options the first time a boolean
	// option is seen.
	VMFlag string
}

// TakesValue reports whether the option carries a value.
func (d *Descriptor) TakesValue() bool {
	switch d.Kind {
	case KindString, KindEnum:
		return true
	case KindCallback:
		return d.Value != ""
	default:
		return false
	}
}

// consumesNext reports whether a missing inline value is taken from the next
// argument. Callbacks only ever take inline values.
func (d *Descriptor) consumesNext() bool {
	return d.Kind == KindString || d.Kind == KindEnum
}

// spelling returns the flag as it appeared in token: "-D" or "--define".
func (d *Descriptor) spelling(token string) string {
	if d.Short != 0 && !strings.HasPrefix(token, "--") {
		return "-" + string(d.Short)
	}
	return "--" + d.Name
}

// Synopsis renders the option for usage text, e.g. "--packages=<path>".
func (d *Descriptor) Synopsis() string {
	value := d.Value
	if d.Kind == KindEnum && value == "" {
		value = "<" + strings.Join(d.Enum.Names(), "|") + ">"
	}

	long := "--" + d.Name
	switch {
	case value == "":
	case d.OptionalValue:
		long += "[=" + value + "]"
	default:
		long += "=" + value
	}

	if d.Short == 0 {
		return long
	}
	short := "-" + string(d.Short)
	if d.Kind == KindCallback {
		short += value
	}
	return short + ", " + long
}

func stringOption(name string, field StringField, value, usage string) Descriptor {
	return Descriptor{Name: name, Kind: KindString, Slot: int(field), Value: value, Usage: usage, Verbose: true}
}

func boolOption(name string, field BoolField, usage string) Descriptor {
	return Descriptor{Name: name, Kind: KindBool, Slot: int(field), Usage: usage, Verbose: true}
}

// vmBoolOption is a boolean that is also forwarded to the VM as vmFlag.
func vmBoolOption(name string, field BoolField, vmFlag string, usage string) Descriptor {
	d := boolOption(name, field, usage)
	d.VMFlag = vmFlag
	return d
}

func shortBoolOption(short byte, name string, field BoolField, usage string) Descriptor {
	return Descriptor{Name: name, Short: short, Kind: KindShortBool, Slot: int(field), Usage: usage}
}

func enumOption(name string, field EnumField, spec *EnumSpec, usage string) Descriptor {
	return Descriptor{Name: name, Kind: KindEnum, Slot: int(field), Enum: spec, Usage: usage, Verbose: true}
}

func callbackOption(name string, handler Handler, value string, usage string) Descriptor {
	return Descriptor{Name: name, Kind: KindCallback, Handler: handler, Value: value, Usage: usage, Verbose: true}
}

// common marks an option for the short usage listing.
func common(d Descriptor) Descriptor {
	d.Verbose = false
	return d
}

var descriptors = [...]Descriptor{
	common(shortBoolOption('h', "help", HelpOption,
		"Display this message (add -v or --verbose for information about all VM options).")),
	common(shortBoolOption('v', "verbose", VerboseOption,
		"Show additional information.")),
	common(boolOption("version", VersionOption,
		"Print the VM version.")),

	common(stringOption("packages", PackagesFile, "<path>",
		"Where to find a package spec file.")),
	stringOption("package_root", PackageRoot, "<path>",
		"Where to find packages, that is, \"package:...\" imports."),
	common(stringOption("snapshot", SnapshotFilename, "<file_name>",
		"Write a snapshot to <file_name> (requires --snapshot_kind).")),
	stringOption("snapshot_depfile", SnapshotDepsFilename, "<file_name>",
		"Write a Makefile-style dependency file for the snapshot."),
	stringOption("depfile", Depfile, "<file_name>",
		"Write a Makefile-style dependency file for the compiled output."),
	stringOption("depfile_output_filename", DepfileOutputFilename, "<file_name>",
		"Target name recorded in the dependency file."),
	stringOption("shared_blobs", SharedBlobsFilename, "<file_name>",
		"Reuse the data blobs of an existing app snapshot."),
	stringOption("save_compilation_trace", SaveCompilationTraceFilename, "<file_name>",
		"Write the compilation trace to <file_name> on exit."),
	stringOption("load_compilation_trace", LoadCompilationTraceFilename, "<file_name>",
		"Replay a compilation trace before running the script."),
	stringOption("save_type_feedback", SaveTypeFeedbackFilename, "<file_name>",
		"Write collected type feedback to <file_name> on exit."),
	stringOption("load_type_feedback", LoadTypeFeedbackFilename, "<file_name>",
		"Load type feedback before running the script."),
	stringOption("root_certs_file", RootCertsFile, "<path>",
		"The path to a file containing the trusted root certificates."),
	stringOption("root_certs_cache", RootCertsCache, "<path>",
		"The path to a cache directory containing the trusted root certificates."),
	stringOption("namespace", Namespace, "<path>",
		"The path to a directory that file system operations are resolved against."),

	common(enumOption("snapshot_kind", GenSnapshotKind, snapshotKinds,
		"The kind of snapshot to write with --snapshot.")),

	boolOption("compile_all", CompileAll,
		"Compile all functions before running the script."),
	boolOption("disable_service_origin_check", VMServiceDevMode,
		"Disable the origin check of the diagnostic service (development only)."),
	boolOption("deterministic", Deterministic,
		"Make code generation and snapshots reproducible."),
	boolOption("trace_loading", TraceLoading,
		"Trace library and script loading."),
	boolOption("short_socket_read", ShortSocketRead,
		"Limit socket reads to one byte (testing only)."),
	boolOption("short_socket_write", ShortSocketWrite,
		"Limit socket writes to one byte (testing only)."),
	boolOption("disable_exit", ExitDisabled,
		"Make exit() from the script a no-op."),
	boolOption("preview_dart_2", NopOption,
		"Accepted for compatibility; has no effect."),
	boolOption("suppress_core_dump", SuppressCoreDump,
		"Disable core dumps on abnormal termination."),
	vmBoolOption("print_flags", PrintFlags, "--print_flags",
		"Print the VM flags and their values before running the script."),
	vmBoolOption("verbose_debug", VerboseDebug, "--verbose_debug",
		"Print verbose debugger output from the VM."),

	func() Descriptor {
		d := common(callbackOption("define", HandleEnvironment, "<name>=<value>",
			"Define an environment declaration. Repeatable."))
		d.Short = 'D'
		d.Repeatable = true
		return d
	}(),
	func() Descriptor {
		d := common(callbackOption("enable-vm-service", HandleEnableVMService, "<host>:<port>",
			"Enable the diagnostic service, listening on <host>:<port> (default localhost:8181)."))
		d.OptionalValue = true
		return d
	}(),
	func() Descriptor {
		d := common(callbackOption("observe", HandleObserve, "<host>:<port>",
			"Enable the diagnostic service and pause isolates on exit and on unhandled exceptions."))
		d.OptionalValue = true
		return d
	}(),
	callbackOption("abi-version", HandleABIVersion, "<version>",
		fmt.Sprintf("Target ABI version, %d to %d, or \"unset\".", OldestSupportedABIVersion, CurrentABIVersion)),
}

var longIndex, shortIndex = mustIndex(descriptors[:])

// buildIndex maps long and short names to their descriptors. A duplicate name
// is a programming error in the table.
func buildIndex(table []Descriptor) (map[string]*Descriptor, map[byte]*Descriptor, error) {
	long := make(map[string]*Descriptor, len(table))
	short := make(map[byte]*Descriptor)
	for i := range table {
		d := &table[i]
		if d.Name == "" {
			return nil, nil, fmt.Errorf("descriptor %d has no name", i)
		}
		if _, dup := long[d.Name]; dup {
			return nil, nil, fmt.Errorf("duplicate option name %q", d.Name)
		}
		long[d.Name] = d
		if d.Short == 0 {
			continue
		}
		if _, dup := short[d.Short]; dup {
			return nil, nil, fmt.Errorf("duplicate short option %q", string(d.Short))
		}
		short[d.Short] = d
	}
	return long, short, nil
}

func mustIndex(table []Descriptor) (map[string]*Descriptor, map[byte]*Descriptor) {
	long, short, err := buildIndex(table)
	if err != nil {
		panic("options: " + err.Error())
	}
	return long, short
}

// Lookup returns the descriptor for a long option name, or nil.
// A '-' in name may stand for '_' in the registered name.
func Lookup(name string) *Descriptor {
	if d, ok := longIndex[name]; ok {
		return d
	}
	if strings.IndexByte(name, '-') >= 0 {
		return longIndex[strings.ReplaceAll(name, "-", "_")]
	}
	return nil
}

// LookupShort returns the descriptor for a single-letter alias, or nil.
func LookupShort(c byte) *Descriptor {
	return shortIndex[c]
}

// Descriptors returns a copy of the option table in declaration order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors[:])
	return out
}

// Names returns every long option name, sorted.
func Names() []string {
	names := make([]string, 0, len(longIndex))
	for name := range longIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
