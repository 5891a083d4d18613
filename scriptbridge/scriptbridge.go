// Package scriptbridge is an optional script-runtime collaborator: it lets
// a vision module be authored as a plain Go source file, interpreted at
// load time instead of built as a plug-in shared object. It is
// feature-flagged behind the tv_script build tag: default builds keep the
// dependency surface small and return NotImplemented (see noscript.go);
// builds tagged tv_script get a real interpreter backed by cogentcore/yaegi
// (script.go).
package scriptbridge

import "tinkervision.dev/tv/module"

// EntrypointFunc is the signature a script must expose as a package-level
// function named New; it mirrors module.Factory so a script-backed module
// is indistinguishable from a plug-in-backed one to the rest of the
// runtime.
type EntrypointFunc = module.Factory
