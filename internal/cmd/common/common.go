package common

import "fmt"

// OutputFormat is the value of the --output flag.
type OutputFormat int

type LogLevel int

type ColorMode int

// Layout selects how record collections are presented in text output.
type Layout int

const (
	JSON OutputFormat = iota
	YAML
	TEXT
)

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

const (
	ColorModeAuto ColorMode = iota
	ColorModeAlways
	ColorModeNever
)

const (
	LayoutAuto Layout = iota
	LayoutGrid
	LayoutStacked
)

const (
	// related to the --output flag
	DefaultOutputFormat = "text"
	OutputFlagName      = "output"
	OutputFlagShort     = "o"
	OutputConfigPath    = OutputFlagName

	// related to the --color flag
	ColorFlagName    = "color"
	ColorConfigPath  = ColorFlagName
	DefaultColorMode = "auto"

	// related to the --layout flag
	LayoutFlagName    = "layout"
	LayoutConfigPath  = LayoutFlagName
	DefaultLayoutMode = "auto"

	// related to the --profile flag
	ProfileFlagName  = "profile"
	ProfileFlagShort = "p"

	// related to the --config-file flag
	ConfigFilePathFlagName = "config-file"

	// related to the --log-level flag
	LogLevelFlagName   = "log-level"
	DefaultLogLevel    = "info"
	LogLevelConfigPath = LogLevelFlagName

	// related to the --log-file flag
	LogFileFlagName   = "log-file"
	LogFileConfigPath = LogFileFlagName

	// related to the --interactive flag
	InteractiveFlagName  = "interactive"
	InteractiveFlagShort = "i"

	// related to the --yes flag
	AutoApproveFlagName = "yes"

	// related to the --theme flag
	ColorThemeFlagName   = "theme"
	ColorThemeConfigPath = ColorThemeFlagName
	DefaultColorTheme    = "amora-light"
)

var (
	outputFormatNames = []string{"json", "yaml", "text"}
	logLevelNames     = []string{"trace", "debug", "info", "warn", "error"}
	colorModeNames    = []string{"auto", "always", "never"}
	layoutNames       = []string{"auto", "grid", "stacked"}
)

func (of OutputFormat) String() string {
	return outputFormatNames[of]
}

func OutputFormatStringToIota(format string) (OutputFormat, error) {
	switch format {
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	case "text", "":
		return TEXT, nil
	default:
		return TEXT, fmt.Errorf("invalid output format %q, must be one of %v", format, outputFormatNames)
	}
}

// OutputFormatNames lists the accepted --output values.
func OutputFormatNames() []string {
	return append([]string(nil), outputFormatNames...)
}

func (ll LogLevel) String() string {
	return logLevelNames[ll]
}

func LogLevelStringToIota(level string) (LogLevel, error) {
	for i, name := range logLevelNames {
		if name == level {
			return LogLevel(i), nil
		}
	}
	return ERROR, fmt.Errorf("invalid log level %q, must be one of %v", level, logLevelNames)
}

// LogLevelNames lists the accepted --log-level values.
func LogLevelNames() []string {
	return append([]string(nil), logLevelNames...)
}

func (cm ColorMode) String() string {
	if cm < ColorModeAuto || cm > ColorModeNever {
		return "auto"
	}
	return colorModeNames[cm]
}

func ColorModeStringToIota(mode string) (ColorMode, error) {
	switch mode {
	case "auto", "":
		return ColorModeAuto, nil
	case "always":
		return ColorModeAlways, nil
	case "never":
		return ColorModeNever, nil
	default:
		return ColorModeAuto, fmt.Errorf("invalid color mode %q, must be one of %v", mode, colorModeNames)
	}
}

// ColorModeNames lists the accepted --color values.
func ColorModeNames() []string {
	return append([]string(nil), colorModeNames...)
}

func (l Layout) String() string {
	if l < LayoutAuto || l > LayoutStacked {
		return "auto"
	}
	return layoutNames[l]
}

func LayoutStringToIota(layout string) (Layout, error) {
	switch layout {
	case "auto", "":
		return LayoutAuto, nil
	case "grid":
		return LayoutGrid, nil
	case "stacked":
		return LayoutStacked, nil
	default:
		return LayoutAuto, fmt.Errorf("invalid layout %q, must be one of %v", layout, layoutNames)
	}
}

// LayoutNames lists the accepted --layout values.
func LayoutNames() []string {
	return append([]string(nil), layoutNames...)
}
