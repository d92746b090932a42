package bot

import "time"

// gotoOptions carries the per-request knobs of a navigation call.
type gotoOptions struct {
	timeout  time.Duration
	useCache bool
	fallback bool
}

// GotoOption adjusts a single navigation request.
type GotoOption func(*gotoOptions)

func (p *Pilot) newGotoOptions() gotoOptions {
	return gotoOptions{
		timeout:  p.cfg.GotoTimeout,
		useCache: true,
		fallback: true,
	}
}

// WithTimeout bounds the direct attempt of this request. Non-positive values
// are ignored and the configured default applies.
func WithTimeout(d time.Duration) GotoOption {
	return func(o *gotoOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithoutCache skips the route memo lookup for this request. A successful
// direct navigation still stores its route for future callers.
func WithoutCache() GotoOption {
	return func(o *gotoOptions) {
		o.useCache = false
	}
}

// WithoutFallback disables the staged retry that normally follows a
// direct-path timeout; the timeout error surfaces instead.
func WithoutFallback() GotoOption {
	return func(o *gotoOptions) {
		o.fallback = false
	}
}
