package compiler

// DefaultName is the compiler identity assumed when none is configured.
const DefaultName = "dmd"

var registry = map[string]Compiler{
	"dmd": NewDMD(),
	"ldc": &DMD{identity: "ldc"},
	"gdc": &DMD{identity: "gdc"},
}

// Get returns the compiler capability registered under the given identity.
func Get(name string) (Compiler, bool) {
	c, ok := registry[name]
	return c, ok
}

// Default returns the default compiler capability.
func Default() Compiler {
	return registry[DefaultName]
}
