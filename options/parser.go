package options

import "strings"

// ParseConfig carries the launcher-level inputs that shape parsing.
type ParseConfig struct {
	// RunAppSnapshot is set when the launcher itself runs from an app
	// snapshot; Validate rejects snapshot generation in that mode.
	RunAppSnapshot bool

	// ServiceDefaults is used when --enable-vm-service or --observe is
	// given without an address.
	ServiceDefaults ServiceAddress
}

// DefaultParseConfig returns a config with localhost:8181 service defaults.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{ServiceDefaults: DefaultServiceAddress()}
}

// Parser scans a launcher argument vector in a single left-to-right pass.
type Parser struct {
	cfg      ParseConfig
	position int
	settings *Settings
}

// NewParser creates a parser with the given configuration. A zero
// ServiceDefaults is replaced by DefaultServiceAddress.
func NewParser(cfg ParseConfig) *Parser {
	if cfg.ServiceDefaults == (ServiceAddress{}) {
		cfg.ServiceDefaults = DefaultServiceAddress()
	}
	return &Parser{cfg: cfg}
}

// Parse parses args with the default configuration.
func Parse(args []string) (*Settings, error) {
	return NewParser(DefaultParseConfig()).Parse(args)
}

// Parse scans args and returns a fresh Settings.
//
// Option scanning stops at the first argument that does not start with '-';
// that argument is the script and everything after it is passed through.
// The first error aborts the scan, unless --help or --version was already
// seen, in which case the error is dropped so the caller can still print
// help or version text.
func (p *Parser) Parse(args []string) (*Settings, error) {
	p.reset()

	for p.position < len(args) {
		arg := args[p.position]

		if !isOption(arg) {
			p.settings.setScript(arg, args[p.position+1:])
			break
		}

		if err := p.parseArgument(arg, args); err != nil && !p.settings.EarlyExit() {
			return nil, err
		}
		p.position++
	}

	return p.settings, nil
}

// isOption reports whether arg is scanned as an option. A lone "-" names
// standard input as the script.
func isOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

func (p *Parser) parseArgument(arg string, allArgs []string) error {
	if strings.HasPrefix(arg, "--") {
		return p.parseLongOption(arg, allArgs)
	}
	return p.parseShortOptions(arg, allArgs)
}

// parseLongOption handles --name and --name=value.
func (p *Parser) parseLongOption(arg string, allArgs []string) error {
	name, text, hasValue := strings.Cut(arg[2:], "=")

	d := Lookup(name)
	if d == nil {
		return unknownOptionError(name, arg)
	}

	v := optionValue{text: text, present: hasValue}
	if !hasValue && d.consumesNext() {
		v = p.nextValue(allArgs)
	}
	return p.settings.apply(d, arg, v, &p.cfg)
}

// parseShortOptions handles -h, clusters such as -hv, and attached values
// such as -Dname=value. A value-taking letter consumes the rest of the
// cluster.
func (p *Parser) parseShortOptions(arg string, allArgs []string) error {
	cluster := arg[1:]
	for i := 0; i < len(cluster); i++ {
		d := LookupShort(cluster[i])
		if d == nil {
			return unknownOptionError(cluster[i:i+1], arg)
		}

		if !d.TakesValue() {
			if err := p.settings.apply(d, arg, optionValue{}, &p.cfg); err != nil {
				return err
			}
			continue
		}

		rest := cluster[i+1:]
		v := optionValue{text: rest, present: rest != ""}
		if !v.present && d.consumesNext() {
			v = p.nextValue(allArgs)
		}
		return p.settings.apply(d, arg, v, &p.cfg)
	}
	return nil
}

// nextValue consumes the following argument, if any.
func (p *Parser) nextValue(allArgs []string) optionValue {
	if p.position+1 >= len(allArgs) {
		return optionValue{}
	}
	p.position++
	return optionValue{text: allArgs[p.position], present: true}
}

func (p *Parser) reset() {
	p.position = 0
	p.settings = newSettings()
}
