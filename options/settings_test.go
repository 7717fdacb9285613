package options

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCurrentDefaults(t *testing.T) {
	Destroy()
	t.Cleanup(Destroy)

	s := Current()
	if diff := cmp.Diff(newSettings(), s, settingsComparer); diff != "" {
		t.Errorf("Expected an all-defaults record (-want +got):\n%s", diff)
	}
	if s.ABIVersion() != ABIVersionUnset {
		t.Errorf("Expected ABI version unset, got %d", s.ABIVersion())
	}
	if s.SnapshotKind() != SnapshotKindNone {
		t.Errorf("Expected snapshot kind none, got %s", s.SnapshotKind())
	}
}

func TestParseArgumentsInstallsRecord(t *testing.T) {
	Destroy()
	t.Cleanup(Destroy)

	s, err := ParseArguments([]string{"-Dmode=debug", "--trace_loading", "main.dart"}, DefaultParseConfig())
	if err != nil {
		t.Fatalf("ParseArguments failed: %v", err)
	}
	if Current() != s {
		t.Fatal("Expected ParseArguments to install the parsed record")
	}
	if !Current().TraceLoading() {
		t.Error("Expected trace_loading to be set")
	}
}

func TestParseArgumentsFailureKeepsRecord(t *testing.T) {
	Destroy()
	t.Cleanup(Destroy)

	before, err := ParseArguments([]string{"--deterministic"}, DefaultParseConfig())
	if err != nil {
		t.Fatalf("ParseArguments failed: %v", err)
	}

	s, err := ParseArguments([]string{"--compile_all", "--bogus"}, DefaultParseConfig())
	if err == nil {
		t.Fatal("Expected ParseArguments to fail")
	}
	if s != nil {
		t.Error("Expected no settings on failure")
	}
	if Current() != before {
		t.Error("Expected a failed parse to leave the previous record installed")
	}
	if Current().CompileAll() {
		t.Error("Expected no partial application of a failed parse")
	}
}

func TestDestroy(t *testing.T) {
	s, err := ParseArguments([]string{"-Da=1", "--abi-version=2"}, DefaultParseConfig())
	if err != nil {
		t.Fatalf("ParseArguments failed: %v", err)
	}

	Destroy()

	if s.Environment().Len() != 0 {
		t.Error("Expected Destroy to release the environment entries")
	}
	if Current() == s {
		t.Error("Expected Destroy to reset the process-wide record")
	}
	if Current().ABIVersion() != ABIVersionUnset {
		t.Errorf("Expected a fresh record, got ABI version %d", Current().ABIVersion())
	}
}

func TestNamedAccessors(t *testing.T) {
	s := mustParse(t,
		"--packages=p", "--package_root=r", "--snapshot=s", "--snapshot_depfile=sd",
		"--depfile=d", "--depfile_output_filename=do", "--shared_blobs=b",
		"--save_compilation_trace=sct", "--load_compilation_trace=lct",
		"--save_type_feedback=stf", "--load_type_feedback=ltf",
		"--root_certs_file=rf", "--root_certs_cache=rc", "--namespace=ns",
		"--compile_all", "--disable_service_origin_check", "--deterministic",
		"--trace_loading", "--short_socket_read", "--short_socket_write",
		"--disable_exit", "--suppress_core_dump", "-v",
	)

	strs := []struct {
		get  func() (string, bool)
		want string
	}{
		{s.PackagesFile, "p"},
		{s.PackageRoot, "r"},
		{s.SnapshotFilename, "s"},
		{s.SnapshotDepsFilename, "sd"},
		{s.Depfile, "d"},
		{s.DepfileOutputFilename, "do"},
		{s.SharedBlobsFilename, "b"},
		{s.SaveCompilationTraceFilename, "sct"},
		{s.LoadCompilationTraceFilename, "lct"},
		{s.SaveTypeFeedbackFilename, "stf"},
		{s.LoadTypeFeedbackFilename, "ltf"},
		{s.RootCertsFile, "rf"},
		{s.RootCertsCache, "rc"},
		{s.Namespace, "ns"},
	}
	for i, tt := range strs {
		if got, ok := tt.get(); !ok || got != tt.want {
			t.Errorf("string accessor %d: expected %q, got %q (set=%v)", i, tt.want, got, ok)
		}
	}

	bools := map[string]bool{
		"CompileAll":       s.CompileAll(),
		"VMServiceDevMode": s.VMServiceDevMode(),
		"Deterministic":    s.Deterministic(),
		"TraceLoading":     s.TraceLoading(),
		"ShortSocketRead":  s.ShortSocketRead(),
		"ShortSocketWrite": s.ShortSocketWrite(),
		"ExitDisabled":     s.ExitDisabled(),
		"SuppressCoreDump": s.SuppressCoreDump(),
		"Verbose":          s.Verbose(),
	}
	for name, got := range bools {
		if !got {
			t.Errorf("Expected %s to be true", name)
		}
	}
	if s.EarlyExit() {
		t.Error("Expected no early exit")
	}
	if s.GetEnum(GenSnapshotKind) != int(SnapshotKindNone) {
		t.Errorf("Expected enum ordinal 0, got %d", s.GetEnum(GenSnapshotKind))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := mustParse(t, "--observe", "main.dart", "a")

	vm := s.VMOptions()
	vm[0] = "changed"
	if s.VMOptions()[0] == "changed" {
		t.Error("Expected VMOptions to return a copy")
	}

	args := s.ScriptArgs()
	args[0] = "changed"
	if s.ScriptArgs()[0] != "a" {
		t.Error("Expected ScriptArgs to return a copy")
	}
}
