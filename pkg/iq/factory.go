package iq

// Config names which Source to construct, mirroring config.IQSourceConfig
// (§9.2).
type Config struct {
	Kind       string // "tcp" or "file"
	Path       string // file kind
	Address    string // tcp kind, "host:port"
	SampleRate int
}

// New builds a Source for cfg.Kind. Returns ErrUnsupportedKind for "usb"
// (requires a cgo librtlsdr binding, out of scope here — see DESIGN.md)
// or any other unrecognized kind.
func New(cfg Config) (Source, error) {
	switch cfg.Kind {
	case "tcp":
		return NewTCPSource(cfg.Address)
	case "file":
		return NewFileSource(cfg.Path)
	default:
		return nil, ErrUnsupportedKind{Kind: cfg.Kind}
	}
}
