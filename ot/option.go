package ot

// --- Parse options ---------------------------------------------------------

// Limits are the capacities of the structures a font is parsed into.
// Zero values are replaced by the defaults.
type Limits struct {
	MaxFileSize   int // maximum size of a font binary in bytes
	MaxTables     int // maximum number of table records in the font directory
	MaxSubtables  int // maximum number of cmap encoding records
	MaxSegments   int // maximum number of segments of a format 4 cmap subtable
	MaxGlyphSlots int // maximum number of entries of a format 4 glyphIdArray
}

// DefaultLimits are used if a client does not provide limits of its own.
var DefaultLimits = Limits{
	MaxFileSize:   65536,
	MaxTables:     64,
	MaxSubtables:  16,
	MaxSegments:   256,
	MaxGlyphSlots: 1024,
}

func (l Limits) orDefault() Limits {
	if l.MaxFileSize <= 0 {
		l.MaxFileSize = DefaultLimits.MaxFileSize
	}
	if l.MaxTables <= 0 {
		l.MaxTables = DefaultLimits.MaxTables
	}
	if l.MaxSubtables <= 0 {
		l.MaxSubtables = DefaultLimits.MaxSubtables
	}
	if l.MaxSegments <= 0 {
		l.MaxSegments = DefaultLimits.MaxSegments
	}
	if l.MaxGlyphSlots <= 0 {
		l.MaxGlyphSlots = DefaultLimits.MaxGlyphSlots
	}
	return l
}

// ParseOption guides and influences the parsing of the font.
type ParseOption func(*parseConfig)

type parseConfig struct {
	limits          Limits
	checksums       bool // validate table checksums, reporting mismatches as warnings
	strictChecksums bool // checksum mismatches are fatal
}

func newParseConfig(opts []ParseOption) *parseConfig {
	cfg := &parseConfig{limits: DefaultLimits}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	cfg.limits = cfg.limits.orDefault()
	return cfg
}

// WithLimits sets the capacities for parsing.
func WithLimits(l Limits) ParseOption {
	return func(cfg *parseConfig) {
		cfg.limits = l
	}
}

// WithChecksums switches on validation of table checksums. A mismatch will be
// reported as a warning (see Font.Warnings) and never prevents parsing.
func WithChecksums() ParseOption {
	return func(cfg *parseConfig) {
		cfg.checksums = true
	}
}

// WithStrictChecksums switches on validation of table checksums, with a mismatch
// being a fatal error of kind ErrMalformedFont.
func WithStrictChecksums() ParseOption {
	return func(cfg *parseConfig) {
		cfg.checksums = true
		cfg.strictChecksums = true
	}
}

// ResolveLimits returns the limits in effect for a set of options.
// Clients loading font files use it to size the read buffer.
func ResolveLimits(opts ...ParseOption) Limits {
	return newParseConfig(opts).limits
}

// --- Option ----------------------------------------------------------------

// Option represents an optional value.
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an Option with a value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None constructs an empty Option.
func None[T any]() Option[T] {
	var zero T
	return Option[T]{value: zero, ok: false}
}

// IsSome reports whether the option contains a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// Unwrap returns the value and a boolean indicating presence.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}
