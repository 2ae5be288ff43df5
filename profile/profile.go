package profile

// Settings configures a profiler. The zero value is disabled.
type Settings struct {
	Mode  string
	Path  string
	Quiet bool
}

// Make returns the settings produced by applying opts in order.
func Make(opts ...func(Settings) Settings) Settings {
	var s Settings

	for _, opt := range opts {
		s = opt(s)
	}

	return s
}

// Start initializes the profiler and returns an interface for stopping it.
//
// Without the pprof build tag, or with an empty or unknown Mode, Start
// returns a no-op. Both Start and Stop are always safely callable.
func (s Settings) Start() interface{ Stop() } {
	if s.Mode == "" {
		return ignore{}
	}

	return start(s.Mode, s.Path, s.Quiet)
}

// WithMode sets the profiling mode. See [Modes].
func WithMode(mode string) func(Settings) Settings {
	return func(s Settings) Settings {
		s.Mode = mode

		return s
	}
}

// WithPath sets the directory profiles are written to.
func WithPath(path string) func(Settings) Settings {
	return func(s Settings) Settings {
		s.Path = path

		return s
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) func(Settings) Settings {
	return func(s Settings) Settings {
		s.Quiet = quiet

		return s
	}
}

type ignore struct{}

func (ignore) Stop() {}
