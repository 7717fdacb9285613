package options

import (
	"errors"
	"strconv"
)

// optionValue is the value attached to one occurrence of an option.
// present distinguishes "--packages=" from "--packages".
type optionValue struct {
	text    string
	present bool
}

// apply coerces v according to d's kind and stores it. Later occurrences
// overwrite earlier ones, except repeatable callbacks.
func (s *Settings) apply(d *Descriptor, token string, v optionValue, cfg *ParseConfig) error {
	switch d.Kind {
	case KindString:
		if !v.present {
			return missingValueError(d, token)
		}
		s.strs[d.Slot] = optionalString{value: v.text, set: true}

	case KindBool, KindShortBool:
		if v.present {
			return unexpectedValueError(d, token)
		}
		if d.VMFlag != "" && !s.bools[d.Slot] {
			s.vmOptions = append(s.vmOptions, d.VMFlag)
		}
		s.bools[d.Slot] = true

	case KindEnum:
		if !v.present {
			return missingValueError(d, token)
		}
		ordinal, ok := d.Enum.Lookup(v.text)
		if !ok {
			return invalidEnumError(d, token, v.text)
		}
		s.enums[d.Slot] = ordinal

	case KindCallback:
		return s.invoke(d, token, v, cfg)

	default:
		panic("options: descriptor " + d.Name + " has unhandled kind " + d.Kind.String())
	}
	return nil
}

// VM flags turned on by --observe.
var observeVMOptions = []string{
	"--pause-isolates-on-exit",
	"--pause-isolates-on-unhandled-exceptions",
	"--profiler",
	"--warn-on-pause-with-no-debugger",
}

// invoke runs the named handler of a callback option.
func (s *Settings) invoke(d *Descriptor, token string, v optionValue, cfg *ParseConfig) error {
	switch d.Handler {
	case HandleEnvironment:
		if err := s.environment.Collect(v.text); err != nil {
			return locate(err, d, token)
		}

	case HandleEnableVMService:
		addr, err := ParseServiceAddress(v.text, cfg.ServiceDefaults)
		if err != nil {
			return locate(err, d, token)
		}
		s.serviceEnabled = true
		s.service = addr

	case HandleObserve:
		addr, err := ParseServiceAddress(v.text, cfg.ServiceDefaults)
		if err != nil {
			return locate(err, d, token)
		}
		s.serviceEnabled = true
		s.service = addr
		if !s.observe {
			s.observe = true
			s.vmOptions = append(s.vmOptions, observeVMOptions...)
		}

	case HandleABIVersion:
		if !v.present {
			return NewParseError(ErrorTypeInvalidABIVersion, "option requires a value").at(d, token)
		}
		version, err := ParseABIVersion(v.text)
		if err != nil {
			return locate(err, d, token)
		}
		s.abiVersion = version

	default:
		panic("options: descriptor " + d.Name + " has no handler")
	}
	return nil
}

func locate(err error, d *Descriptor, token string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.at(d, token)
	}
	return err
}

// ParseABIVersion accepts "unset" (or -1) and integers between
// OldestSupportedABIVersion and CurrentABIVersion inclusive.
func ParseABIVersion(text string) (int, error) {
	if text == "unset" {
		return ABIVersionUnset, nil
	}
	version, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ParseError{
			Type:    ErrorTypeInvalidABIVersion,
			Message: strconv.Quote(text) + " is not an integer",
			Cause:   err,
		}
	}
	if strconv.Itoa(version) != text {
		return 0, NewParseError(ErrorTypeInvalidABIVersion,
			"%q is not a plain decimal version", text)
	}
	if version == ABIVersionUnset {
		return ABIVersionUnset, nil
	}
	if version < OldestSupportedABIVersion || version > CurrentABIVersion {
		return 0, NewParseError(ErrorTypeInvalidABIVersion,
			"version %d is not supported, expected %d to %d or \"unset\"",
			version, OldestSupportedABIVersion, CurrentABIVersion)
	}
	return version, nil
}
