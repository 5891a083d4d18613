package module

import "sync"

// Parameter is one named, bounded setting a module exposes. Numeric
// parameters are registered with a fixed [Min,Max] and Default; string
// parameters are registered with a Default and an optional Predicate that
// validates a prospective new value. Min/Max are fixed after registration;
// the current numeric value is always clamped to [Min,Max].
type Parameter struct {
	Name    string
	Min     int32
	Max     int32
	Default int32
	Value   int32

	IsString    bool
	StringValue string
	StringPred  func(string) bool
	OnChange    func(name string, value int32)
	OnChangeStr func(name string, value string)
}

func (p *Parameter) clamp(v int32) int32 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// Parameters is the per-module parameter table, keyed by name, standing in
// for a per-module ad hoc set of free functions.
type Parameters struct {
	mu     sync.Mutex
	byName map[string]*Parameter
}

func NewParameters() *Parameters {
	return &Parameters{byName: make(map[string]*Parameter)}
}

// RegisterNumeric registers a numeric parameter with a fixed range and
// default, initializing Value to Default clamped to range.
func (p *Parameters) RegisterNumeric(name string, min, max, def int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	param := &Parameter{Name: name, Min: min, Max: max, Default: def}
	param.Value = param.clamp(def)
	p.byName[name] = param
}

// RegisterString registers a string parameter with a default value and an
// optional predicate that new values must satisfy.
func (p *Parameters) RegisterString(name string, def string, pred func(string) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byName[name] = &Parameter{Name: name, IsString: true, StringValue: def, StringPred: pred}
}

// Has reports whether name is a registered parameter.
func (p *Parameters) Has(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byName[name]
	return ok
}

// Set validates and applies a new numeric value, clamping it to
// [Min,Max], then invokes OnChange (value_changed) if set. Returns false
// if name is unknown or names a string parameter (use SetString).
func (p *Parameters) Set(name string, value int32) bool {
	p.mu.Lock()
	param, ok := p.byName[name]
	if !ok || param.IsString {
		p.mu.Unlock()
		return false
	}
	param.Value = param.clamp(value)
	cb := param.OnChange
	v := param.Value
	p.mu.Unlock()
	if cb != nil {
		cb(name, v)
	}
	return true
}

// SetString validates and applies a new string value.
func (p *Parameters) SetString(name, value string) bool {
	p.mu.Lock()
	param, ok := p.byName[name]
	if !ok || !param.IsString {
		p.mu.Unlock()
		return false
	}
	if param.StringPred != nil && !param.StringPred(value) {
		p.mu.Unlock()
		return false
	}
	param.StringValue = value
	cb := param.OnChangeStr
	p.mu.Unlock()
	if cb != nil {
		cb(name, value)
	}
	return true
}

// Get returns the current numeric value and whether name is known and
// numeric.
func (p *Parameters) Get(name string) (int32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	param, ok := p.byName[name]
	if !ok || param.IsString {
		return 0, false
	}
	return param.Value, true
}

// GetString returns the current string value and whether name is known
// and a string parameter.
func (p *Parameters) GetString(name string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	param, ok := p.byName[name]
	if !ok || !param.IsString {
		return "", false
	}
	return param.StringValue, true
}

// OnNumericChange registers the callback fired by Set for name.
func (p *Parameters) OnNumericChange(name string, fn func(name string, value int32)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if param, ok := p.byName[name]; ok {
		param.OnChange = fn
	}
}
